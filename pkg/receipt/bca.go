package receipt

import (
	"regexp"
	"strings"
	"time"
)

// BCA issues two receipt generations: the old m-Transfer slip and the newer
// myBCA/English layout. The two use disjoint labels, so the extractor first
// classifies the text by marker tokens and then applies the matching ruleset.

var (
	bcaNewDateTimeRE   = regexp.MustCompile(`(\d{2}\s+\w+\s+\d{4})\s+(\d{2}:\d{2}:\d{2})`)
	bcaIDRAmountRE     = regexp.MustCompile(`IDR\s*([\d,]+)(?:\.00)?`)
	bcaRefChunkRE      = regexp.MustCompile(`^[A-Z0-9]+$`)
	bcaOldDateTimeRE   = regexp.MustCompile(`(\d{2}/\d{2})\s+(\d{2}:\d{2}:\d{2})`)
	bcaOldAmountFullRE = regexp.MustCompile(`Rp\s+([\d,]+)\.00`)
	bcaOldAmountRE     = regexp.MustCompile(`Rp\s+([\d,]+)`)
	allCapsLineRE      = regexp.MustCompile(`^[A-Z\s]+$`)
	accountStripRE     = regexp.MustCompile(`[\s-]`)
)

func extractBCA(text string, bank BankType, paper PaperSize) Record {
	lines := splitLines(text)

	isNew := false
	for _, l := range lines {
		u := strings.ToUpper(l)
		if strings.Contains(u, "BENEFICIARY") || strings.Contains(u, "IDR") || strings.Contains(u, "TRANSFER SUCCESSFUL") {
			isNew = true
			break
		}
	}

	var r Record
	if isNew {
		r = scanBCANew(lines)
	} else {
		r = scanBCAOld(lines)
	}
	r.ReceiverBank = BankBCA
	r.PaperSize = paper
	r.BankType = bank
	fillDefaults(&r, BankBCA)
	return r
}

// scanBCANew handles the myBCA layout: labeled fields, amounts in IDR,
// reference numbers that wrap across lines.
func scanBCANew(lines []string) Record {
	var r Record
	for i, line := range lines {
		upper := strings.ToUpper(line)

		// "09 Dec 2025 11:41:11"
		if m := bcaNewDateTimeRE.FindStringSubmatch(line); m != nil {
			r.Date = m[1]
			r.Time = m[2]
		}

		// "IDR 2,000,571.00" -> 2000571. "Currency IDR" lines are labels, skip.
		if strings.Contains(upper, "IDR") && !strings.Contains(upper, "CURRENCY") {
			if m := bcaIDRAmountRE.FindStringSubmatch(line); m != nil {
				r.Amount = parseAmount(m[1])
			}
		}

		// "Beneficiary Name WARSA DIANA", value sometimes on the next line.
		if strings.Contains(upper, "BENEFICIARY NAME") {
			name := strings.TrimSpace(beneficiaryNameRE.ReplaceAllString(line, ""))
			if name == "" && i+1 < len(lines) {
				name = lines[i+1]
			}
			if name != "" {
				r.ReceiverName = name
			}
		}

		// "Beneficiary Account 777 - 309 - 8541" -> 7773098541
		if strings.Contains(upper, "BENEFICIARY ACCOUNT") {
			acc := strings.TrimSpace(beneficiaryAccountRE.ReplaceAllString(line, ""))
			if !strings.ContainsAny(acc, "0123456789") && i+1 < len(lines) {
				acc = lines[i+1]
			}
			if acc != "" {
				r.ReceiverAccount = accountStripRE.ReplaceAllString(acc, "")
			}
		}

		// "Reference No. 9527..." may continue over following lines until a
		// labeled or empty line interrupts the alphanumeric run.
		if strings.Contains(upper, "REFERENCE NO") {
			ref := strings.TrimSpace(referenceNoRE.ReplaceAllString(line, ""))
			for j := i + 1; j < len(lines); j++ {
				next := lines[j]
				if strings.Contains(next, ":") || strings.TrimSpace(next) == "" {
					break
				}
				if bcaRefChunkRE.MatchString(next) {
					ref += strings.TrimSpace(next)
				} else {
					break
				}
			}
			if ref != "" {
				r.ReferenceNumber = ref
			}
		}
	}
	return r
}

var (
	beneficiaryNameRE    = regexp.MustCompile(`(?i)BENEFICIARY NAME`)
	beneficiaryAccountRE = regexp.MustCompile(`(?i)BENEFICIARY ACCOUNT`)
	referenceNoRE        = regexp.MustCompile(`(?i)REFERENCE NO\.?`)
	keaPrefixRE          = regexp.MustCompile(`(?i)^KE\s+`)
	refPrefixRE          = regexp.MustCompile(`(?i)^REF\s+`)
	ddMMRE               = regexp.MustCompile(`\d{2}/\d{2}`)
)

// scanBCAOld handles the m-Transfer slip: "Ke <account>", an all-caps name
// line right after, "Rp 130,000.00" and "Ref <run>".
func scanBCAOld(lines []string) Record {
	var r Record
	for _, line := range lines {
		upper := strings.ToUpper(line)

		// "25/07 07:29:32" — the slip omits the year.
		if m := bcaOldDateTimeRE.FindStringSubmatch(line); m != nil {
			r.Date = m[1] + "/" + time.Now().Format("2006")
			r.Time = m[2]
		}

		if strings.HasPrefix(upper, "KE ") {
			r.ReceiverAccount = strings.TrimSpace(keaPrefixRE.ReplaceAllString(line, ""))
		}

		// The receiver name is the nearest all-caps line after the account.
		if r.ReceiverAccount != "" && r.ReceiverName == "" && len(line) > 2 &&
			!strings.Contains(line, "Rp") && !strings.Contains(line, "Ref") &&
			!ddMMRE.MatchString(line) && !strings.Contains(upper, "TRANSFER") &&
			allCapsLineRE.MatchString(line) {
			r.ReceiverName = line
		}

		if strings.HasPrefix(line, "Rp ") {
			m := bcaOldAmountFullRE.FindStringSubmatch(line)
			if m == nil {
				m = bcaOldAmountRE.FindStringSubmatch(line)
			}
			if m != nil {
				r.Amount = parseAmount(m[1])
			}
		}

		if strings.HasPrefix(upper, "REF ") {
			r.ReferenceNumber = strings.TrimSpace(refPrefixRE.ReplaceAllString(line, ""))
		}
	}
	return r
}
