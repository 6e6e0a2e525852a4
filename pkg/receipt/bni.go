package receipt

import (
	"regexp"
	"strings"
)

// Wondr by BNI slips mix the transfer amount and the admin fee as separate Rp
// lines without a unique label, so the amount rule keeps the largest value not
// marked as a fee ("Biaya"). Sections are header-then-value blocks.

var (
	bniDateRE   = regexp.MustCompile(`(\d{2}\s+\w+\s+\d{4})`)
	bniTimeRE   = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})`)
	bniRpRE     = regexp.MustCompile(`Rp\s*([\d,\.]+)`)
	bniRefColRE = regexp.MustCompile(`:\s*(\d+)`)
	bniDigitsRE = regexp.MustCompile(`^\d+$`)
	bniAcctRE   = regexp.MustCompile(`(\d{8,})`)
	anyDigitRE  = regexp.MustCompile(`\d`)
)

func extractBNI(text string, bank BankType, paper PaperSize) Record {
	lines := splitLines(text)
	var r Record

	for i, line := range lines {
		upper := strings.ToUpper(line)

		// "06 Des 2025 • 04:41:51 WIB •"
		if bniDateRE.MatchString(line) && strings.Contains(line, ":") {
			if m := bniDateRE.FindStringSubmatch(line); m != nil {
				r.Date = m[1]
			}
			if m := bniTimeRE.FindString(line); m != "" {
				r.Time = m
			}
		}

		// Largest non-fee Rp value wins so a Rp2.500 admin fee cannot shadow
		// the Rp1.000.755 transfer.
		if strings.Contains(line, "Rp") && !strings.Contains(line, "Biaya") {
			if m := bniRpRE.FindStringSubmatch(line); m != nil {
				if amt := parseAmount(m[1]); amt > r.Amount {
					r.Amount = amt
				}
			}
		}

		// "Ref ID: 20251206044147000158", value occasionally wraps.
		if strings.Contains(upper, "REF ID") || strings.Contains(upper, "REF NO") {
			if m := bniRefColRE.FindStringSubmatch(line); m != nil {
				r.ReferenceNumber = m[1]
			} else if i+1 < len(lines) && bniDigitsRE.MatchString(lines[i+1]) {
				r.ReferenceNumber = lines[i+1]
			}
		}

		// "Sumber dana" header, sender name on the next line.
		if strings.Contains(upper, "SUMBER DANA") && i+1 < len(lines) {
			name := lines[i+1]
			if !strings.Contains(name, "BNI") && !anyDigitRE.MatchString(name) {
				r.SenderName = name
			}
		}

		// "Penerima" header: name next line, "BNI • 0799641820" two below.
		if strings.Contains(upper, "PENERIMA") {
			if i+1 < len(lines) {
				r.ReceiverName = honorificRE.ReplaceAllString(lines[i+1], "")
			}
			if i+2 < len(lines) {
				if m := bniAcctRE.FindStringSubmatch(lines[i+2]); m != nil {
					r.ReceiverAccount = m[1]
				}
			}
		}
	}

	r.ReceiverBank = BankBNI
	r.PaperSize = paper
	r.BankType = bank
	fillDefaults(&r, BankBNI)
	return r
}
