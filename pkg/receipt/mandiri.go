package receipt

import (
	"regexp"
	"strings"
)

// Livin' by Mandiri receipts put date, time and reference on one bullet line
// and identify parties as "<name>" above a "Bank Mandiri - <account>" row;
// the sender row shows a dotted mask instead of digits.

var (
	mandiriDateRE = regexp.MustCompile(`(\d{2}\s+\w+\s+\d{4})`)
	mandiriTimeRE = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})`)
	mandiriRefRE  = regexp.MustCompile(`(?i)NO\.?\s*REF\.?\s*(\d+)`)
	mandiriRpRE   = regexp.MustCompile(`Rp\s*([\d,\.]+)`)
	mandiriAcctRE = regexp.MustCompile(`(\d{10,})`)
	honorificRE   = regexp.MustCompile(`(?i)^(Bpk|Ibu|Sdr)\.?\s+`)
)

func extractMandiri(text string, bank BankType, paper PaperSize) Record {
	lines := splitLines(text)
	var r Record

	for i, line := range lines {
		upper := strings.ToUpper(line)

		// "04 Des 2025 • 16:15:52 WIB • No. Ref. 2512041122006741849"
		if mandiriDateRE.MatchString(line) && strings.Contains(line, ":") {
			if m := mandiriDateRE.FindStringSubmatch(line); m != nil {
				r.Date = m[1]
			}
			if m := mandiriTimeRE.FindString(line); m != "" {
				r.Time = m
			}
		}
		if strings.Contains(upper, "NO. REF") || strings.Contains(upper, "NO REF") {
			if m := mandiriRefRE.FindStringSubmatch(line); m != nil {
				r.ReferenceNumber = m[1]
			}
		}

		// "Total Transaksi" with the Rp value on the same or the next line.
		if strings.Contains(upper, "TOTAL TRANSAKSI") {
			if strings.Contains(line, "Rp") {
				if m := mandiriRpRE.FindStringSubmatch(line); m != nil {
					r.Amount = parseAmount(m[1])
				}
			} else if i+1 < len(lines) && strings.Contains(lines[i+1], "Rp") {
				if m := mandiriRpRE.FindStringSubmatch(lines[i+1]); m != nil {
					r.Amount = parseAmount(m[1])
				}
			}
		}

		// Receiver: "Bank Mandiri - 1210006207728", name on the line above.
		if strings.Contains(line, "Bank Mandiri -") && mandiriAcctRE.MatchString(line) {
			if m := mandiriAcctRE.FindStringSubmatch(line); m != nil {
				r.ReceiverAccount = m[1]
			}
			if i > 0 {
				prev := lines[i-1]
				if !strings.Contains(prev, "Transfer") && !strings.Contains(prev, "Penerima") {
					r.ReceiverName = honorificRE.ReplaceAllString(prev, "")
				}
			}
		}

		// Sender: "Bank Mandiri - .........9764" (masked), name above.
		if strings.Contains(line, "Bank Mandiri -") && strings.Contains(line, "...") {
			if i > 0 {
				prev := lines[i-1]
				if !strings.Contains(prev, "Total") && !strings.Contains(prev, "Sumber") {
					r.SenderName = prev
				}
			}
		}
	}

	r.ReceiverBank = BankMandiri
	r.PaperSize = paper
	r.BankType = bank
	fillDefaults(&r, BankMandiri)
	return r
}
