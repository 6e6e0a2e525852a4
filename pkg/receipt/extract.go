package receipt

import (
	"log"
	"strings"
)

// Pipeline ties the recognizer, the per-bank text rules and the recovery
// chains into one call. It is safe for concurrent use as long as the injected
// Recognizer is.
type Pipeline struct {
	rec    Recognizer
	lookup AccountLookup
}

// NewPipeline builds the extraction pipeline. lookup may be nil; the mapping
// recovery step is then skipped.
func NewPipeline(rec Recognizer, lookup AccountLookup) *Pipeline {
	return &Pipeline{rec: rec, lookup: lookup}
}

// ExtractFile runs the full image-to-record flow: normalize, recognize, parse
// per the selected bank layout, recover masked accounts, then correct the
// recognized fields. A record always comes back: an undecodable image yields
// DefaultRecord alongside the error so callers can both store a complete
// record and flag the upload, and recognition errors past that point degrade
// to a fully-defaulted record. The raw recognized text is returned alongside
// the record for diagnostics and storage.
func (p *Pipeline) ExtractFile(path string, bank BankType, paper PaperSize) (Record, string, error) {
	prep, err := Normalize(path)
	if err != nil {
		log.Printf("normalize %s: %v", path, err)
		return DefaultRecord(bank, paper), "", err
	}
	defer removeTemp(prep)

	text, err := p.rec.Recognize(prep)
	if err != nil {
		log.Printf("recognize %s: %v", path, err)
		text = ""
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("recognize %s: %v", path, ErrEmptyText)
	} else {
		log.Printf("recognized %s: %q", path, snippet(text, 120))
	}

	r := ExtractText(text, bank, paper)

	if bank == BankSeabank {
		p.recoverSeabankAccount(&r, text, prep)
	}

	CorrectRecord(&r)
	return r, text, nil
}

// recoverSeabankAccount fills a missing or mangled destination account on a
// Seabank receipt. Wallet destinations get a crop re-scan of the masked phone
// band; bank destinations walk the masked-account recovery chain and the
// receipt is reported as a BRI transfer, the only bank destination the
// modeled layouts produce.
func (p *Pipeline) recoverSeabankAccount(r *Record, text, prepPath string) {
	if r.ReceiverBank == BankDana {
		if accountLooksComplete(r.ReceiverAccount) {
			return
		}
		if acct, ok := reconstructDanaAccount(p.rec, prepPath); ok {
			r.ReceiverAccount = acct
			return
		}
		if r.ReceiverAccount == "" {
			r.ReceiverAccount = danaMaskPlaceholder
		}
		return
	}
	if r.ReceiverAccount != "" {
		return
	}
	r.ReceiverAccount = reconstructBankAccount(text, r.ReceiverName, p.lookup)
	r.ReceiverBank = BankBRI
}

// accountLooksComplete reports whether a wallet account already has the
// canonical masked-phone shape, meaning digits on both sides of a mask run.
func accountLooksComplete(acct string) bool {
	if acct == "" {
		return false
	}
	star := strings.Index(acct, "*")
	if star <= 0 {
		return false
	}
	last := strings.LastIndex(acct, "*")
	return last < len(acct)-1
}
