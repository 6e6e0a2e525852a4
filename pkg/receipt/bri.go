package receipt

import (
	"regexp"
	"strings"
)

// BRImo slips label their sections (Sumber Dana, Tujuan, Total Transaksi)
// and the value usually lands a line or two below the label, so most rules
// here pair a label with a short lookahead window.

var (
	briDateTimeRE   = regexp.MustCompile(`(\d{1,2}\s+\w+\s+\d{4}),\s+(\d{2}:\d{2}:\d{2})`)
	briRpAmountRE   = regexp.MustCompile(`Rp([\d,\.]+)`)
	briRpOnlyLineRE = regexp.MustCompile(`^Rp[\d,\.]+$`)
	briRefRE        = regexp.MustCompile(`(\d{9,})|(BR\d{7,})`)
	briAcct444xRE   = regexp.MustCompile(`\d{4}\s+\d{4}\s+\d{4}\s+\d{2,4}`)
	briAcctRunRE    = regexp.MustCompile(`\b\d{14,16}\b`)
	briAcct447RE    = regexp.MustCompile(`\d{4}\s+\d{4}\s+\d{6,8}`)
	briAcctSplitRE  = regexp.MustCompile(`(\d{4})(\d{4})(\d{4})(\d+)`)
	leadDigitRE     = regexp.MustCompile(`^\d`)
	maskRunRE       = regexp.MustCompile(`\*{4}`)
)

func extractBRI(text string, bank BankType, paper PaperSize) Record {
	lines := splitLines(text)
	var r Record

	for i, line := range lines {
		upper := strings.ToUpper(line)

		// "25 Juli 2025, 10:02:40 WIB"
		if m := briDateTimeRE.FindStringSubmatch(line); m != nil {
			r.Date = m[1]
			r.Time = m[2]
		}

		// Amount, most specific label first: "Total Transaksi" with the value
		// on the following line beats a bare Rp line lower on the slip.
		if strings.Contains(upper, "TOTAL TRANSAKSI") && i+1 < len(lines) {
			next := lines[i+1]
			if strings.HasPrefix(next, "Rp") {
				if m := briRpAmountRE.FindStringSubmatch(next); m != nil {
					r.Amount = parseAmount(m[1])
				}
			}
		}
		if r.Amount == 0 && strings.Contains(upper, "NOMINAL") {
			if m := briRpAmountRE.FindStringSubmatch(line); m != nil {
				r.Amount = parseAmount(m[1])
			}
		}
		if r.Amount == 0 && briRpOnlyLineRE.MatchString(line) {
			if m := briRpAmountRE.FindStringSubmatch(line); m != nil {
				r.Amount = parseAmount(m[1])
			}
		}

		// "No. Ref" — the recognizer regularly drops the f, accept "No. Re".
		if (strings.Contains(upper, "NO.") && (strings.Contains(upper, "REF") || strings.Contains(upper, "RE"))) ||
			strings.Contains(upper, "NO REF") || strings.Contains(upper, "NO RE") {
			if m := briRefRE.FindString(line); m != "" {
				r.ReferenceNumber = m
			} else if i+1 < len(lines) {
				if m := briRefRE.FindString(lines[i+1]); m != "" {
					r.ReferenceNumber = m
				}
			}
		}

		if strings.Contains(upper, "SUMBER DANA") {
			if name := briNameLookahead(lines, i, true); name != "" {
				r.SenderName = name
			}
		}
		if strings.Contains(upper, "TUJUAN") {
			if name := briNameLookahead(lines, i, false); name != "" {
				r.ReceiverName = name
			}
		}

		// Account numbers inside the "Sumber Dana" block belong to the sender;
		// skip any digit run within 3 lines of that label.
		senderSection := false
		for k := max(0, i-3); k <= i; k++ {
			if strings.Contains(strings.ToUpper(lines[k]), "SUMBER DANA") {
				senderSection = true
				break
			}
		}
		if !senderSection {
			clean := strings.NewReplacer("O", "0", "o", "0", "c", "0", "C", "0", "I", "1", "l", "1").Replace(line)
			switch {
			case briAcct444xRE.MatchString(clean):
				r.ReceiverAccount = briAcct444xRE.FindString(clean)
			case briAcctRunRE.MatchString(clean):
				run := briAcctRunRE.FindString(clean)
				r.ReceiverAccount = briAcctSplitRE.ReplaceAllString(run, "$1 $2 $3 $4")
			case briAcct447RE.MatchString(clean):
				r.ReceiverAccount = briAcct447RE.FindString(clean)
			}
		}
	}

	r.ReceiverBank = BankBRI
	r.PaperSize = paper
	r.BankType = bank
	fillDefaults(&r, BankBRI)
	return r
}

// briNameLookahead scans up to 3 lines past a section label for something that
// looks like a person name rather than bank info or an account number.
func briNameLookahead(lines []string, labelIdx int, rejectMasked bool) string {
	for j := labelIdx + 1; j < min(labelIdx+4, len(lines)); j++ {
		cand := lines[j]
		if !allCapsLineRE.MatchString(cand) || len(cand) <= 3 {
			continue
		}
		if strings.Contains(cand, "BANK") || leadDigitRE.MatchString(cand) {
			continue
		}
		if rejectMasked && maskRunRE.MatchString(cand) {
			continue
		}
		return cand
	}
	return ""
}
