package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var centsRE = regexp.MustCompile(`[.,]\d{2}$`)

// onlyDigits extracts decimal digits from a string.
func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// parseAmount normalizes a captured amount token into whole rupiah. A trailing
// decimal part of exactly two digits (10.000,00 / 130,000.00) is dropped before
// separators are stripped. Returns 0 for anything unparseable; amounts are
// never negative.
func parseAmount(tok string) int64 {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0
	}
	if centsRE.MatchString(tok) {
		tok = tok[:len(tok)-3]
	}
	digits := onlyDigits(tok)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// splitLines breaks OCR output into trimmed, non-empty lines for scanning.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// snippet returns a shortened version of text for logging.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// back up to a rune boundary so the cut never splits a multi-byte char
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
