package receipt

import (
	"regexp"
	"strings"
)

// DANA wallet receipts identify the sender by a masked phone ("ID DANA
// 0857****4165"), carry the amount inline ("Kirim Uang Rp300.000 ke NAME")
// and print very long transaction ids that 80mm paper wraps across several
// digit-only lines, which have to be stitched back together.

var (
	danaDateRE        = regexp.MustCompile(`(\d{1,2}\s+\w{3}\s+\d{4})`)
	danaTimeRE        = regexp.MustCompile(`(\d{2}:\d{2})`)
	danaIDLabelRE     = regexp.MustCompile(`(?i)ID DANA\s+(.+)`)
	danaMaskedPhoneRE = regexp.MustCompile(`^0\d{3}[-*:]{1,4}\d{4}$`)
	danaDashRE        = regexp.MustCompile(`-:?`)
	danaRpRE          = regexp.MustCompile(`Rp([\d,\.]+)`)
	danaKeNameRE      = regexp.MustCompile(`(?i)ke\s+(.+?)(?:\s*-|$)`)
	danaNextNameRE    = regexp.MustCompile(`^[A-Z]+(\s+[A-Z]+)*.*-`)
	danaNameHeadRE    = regexp.MustCompile(`^([A-Z]+(?:\s+[A-Z]+)*)`)
	danaDestAcctRE    = regexp.MustCompile(`[•*]{4}(\d+)`)
	danaNamaLabelRE   = regexp.MustCompile(`(?i)NAMA\s+(.+)`)
	danaCapsRunRE     = regexp.MustCompile(`^[A-Z]{3,}(\s+[A-Z]{3,})*$`)
	danaCapsHeadRE    = regexp.MustCompile(`^[A-Z]{3,}(\s+[A-Z]{3,})*`)
	danaTxLabelRE     = regexp.MustCompile(`(?i)ID TRANSAKSI\s+(\d+)`)
	danaDigits8to25RE = regexp.MustCompile(`^\d{8,25}$`)
	danaDigits15RE    = regexp.MustCompile(`^\d{15,25}$`)
	danaDigits8to15RE = regexp.MustCompile(`^\d{8,15}$`)
	danaDigits8to20RE = regexp.MustCompile(`^\d{8,20}$`)
	danaDigits37RE    = regexp.MustCompile(`^\d{37}$`)
)

func extractDana(text string, bank BankType, paper PaperSize) Record {
	lines := splitLines(text)
	var r Record

	for i, line := range lines {
		upper := strings.ToUpper(line)

		// "21 Jul 2025 • 17:14"
		if m := danaDateRE.FindStringSubmatch(line); m != nil {
			r.Date = m[1]
			if t := danaTimeRE.FindString(line); t != "" {
				r.Time = t
			}
		}

		// "ID DANA 0857****4165"; dashes are OCR-mangled mask runs.
		if strings.Contains(upper, "ID DANA") {
			if m := danaIDLabelRE.FindStringSubmatch(line); m != nil {
				sender := strings.TrimSpace(m[1])
				if strings.Contains(sender, "-") {
					sender = danaDashRE.ReplaceAllString(sender, "****")
				}
				r.SenderName = sender
			}
		}
		// A bare masked-phone line carries the sender too: "0857-:4165".
		if danaMaskedPhoneRE.MatchString(line) {
			sender := line
			if strings.Contains(sender, "-") {
				sender = danaDashRE.ReplaceAllString(sender, "****")
			}
			r.SenderName = sender
		}

		// "Kirim Uang Rp300.000 ke GANI ..." — amount and receiver share the
		// line; the name frequently continues on the next one.
		if strings.Contains(upper, "KIRIM UANG") && strings.Contains(line, "Rp") {
			if m := danaRpRE.FindStringSubmatch(line); m != nil {
				r.Amount = parseAmount(m[1])
			}
			if m := danaKeNameRE.FindStringSubmatch(line); m != nil {
				full := strings.TrimSpace(m[1])
				if i+1 < len(lines) && danaNextNameRE.MatchString(lines[i+1]) {
					if h := danaNameHeadRE.FindStringSubmatch(lines[i+1]); h != nil {
						full += " " + strings.TrimSpace(h[1])
					}
				}
				r.ReceiverName = full
			}
		}

		// "Total Bayar Rp300.000" overrides the inline amount when present.
		if strings.Contains(upper, "TOTAL BAYAR") && strings.Contains(line, "Rp") {
			if m := danaRpRE.FindStringSubmatch(line); m != nil {
				r.Amount = parseAmount(m[1])
			}
		}

		// Destination bank line: "Seabank Indonesia ••••0190"
		for _, bt := range []BankType{BankSeabank, BankBCA, BankBRI, BankMandiri, BankBNI} {
			if strings.Contains(upper, string(bt)) {
				r.ReceiverBank = bt
				if m := danaDestAcctRE.FindStringSubmatch(line); m != nil {
					r.ReceiverAccount = "****" + m[1]
				}
				break
			}
		}

		// "Detail Penerima" block: "Nama GANI MUHAMMAD RAM" with possible
		// continuation line; more reliable than the inline name.
		if strings.Contains(upper, "NAMA") && !strings.Contains(upper, "NAMA PENERIMA") {
			if m := danaNamaLabelRE.FindStringSubmatch(line); m != nil {
				full := strings.TrimSpace(m[1])
				if i+1 < len(lines) {
					next := lines[i+1]
					if danaCapsRunRE.MatchString(next) &&
						!strings.Contains(next, "SEABANK") && !strings.Contains(next, "DANA") && !strings.Contains(next, "AKUN") {
						full += " " + next
					}
				}
				if full != "" {
					r.ReceiverName = full
				}
			}
		}

		// A long all-caps run elsewhere may be a fuller rendition of the name.
		if danaCapsHeadRE.MatchString(line) &&
			!strings.Contains(upper, "DANA") && !strings.Contains(upper, "SEABANK") &&
			!strings.Contains(upper, "TOTAL") && !strings.Contains(upper, "KIRIM") &&
			!strings.Contains(upper, "BAYAR") && !strings.Contains(upper, "INDONESIA") &&
			!strings.Contains(upper, "TRANSFER") && !strings.Contains(upper, "DETAIL") {
			if len(line) > len(r.ReceiverName) {
				r.ReceiverName = line
			}
		}

		// "ID Transaksi 20250721101214100101" plus wrapped digit lines.
		if strings.Contains(upper, "ID TRANSAKSI") {
			if m := danaTxLabelRE.FindStringSubmatch(line); m != nil {
				full := m[1]
				for j := i + 1; j < len(lines) && danaDigits8to25RE.MatchString(lines[j]); j++ {
					full += lines[j]
				}
				r.ReferenceNumber = full
			}
		}
		if r.ReferenceNumber == "" && danaDigits15RE.MatchString(line) {
			full := line
			if i+1 < len(lines) && danaDigits15RE.MatchString(lines[i+1]) {
				full += lines[i+1]
			}
			r.ReferenceNumber = full
		}
		// 80mm paper chops the id into short runs; only accept a stitched
		// result long enough to be a DANA transaction id.
		if r.ReferenceNumber == "" && danaDigits8to15RE.MatchString(line) {
			full := line
			for j := i + 1; j < len(lines) && danaDigits8to20RE.MatchString(lines[j]); j++ {
				full += lines[j]
			}
			if len(full) >= 25 {
				r.ReferenceNumber = full
			}
		}
		if danaDigits37RE.MatchString(line) {
			r.ReferenceNumber = line
		}
	}

	if r.ReceiverBank == "" {
		r.ReceiverBank = BankSeabank
	}
	r.PaperSize = paper
	r.BankType = bank
	fillDefaults(&r, BankDana)
	return r
}
