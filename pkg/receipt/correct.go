package receipt

import (
	"regexp"
	"strings"
)

// FieldKind selects which correction rules apply to an extracted value.
type FieldKind int

const (
	FieldName FieldKind = iota
	FieldAmountText
	FieldAccount
	FieldReference
	FieldBank
)

// Letter-to-digit confusions the recognizer produces on numeric fields.
var digitConfusions = map[rune]rune{
	'O': '0', 'o': '0',
	'I': '1', 'l': '1',
	'S': '5',
	'G': '6',
}

// bankMisreads maps split or digit-polluted bank tokens back to canonical
// codes. First hit wins, matching how receipts carry a single bank label.
var bankMisreads = []struct{ wrong, right string }{
	{"B CA", "BCA"}, {"BC A", "BCA"}, {"B C A", "BCA"},
	{"B RI", "BRI"}, {"BR I", "BRI"}, {"B R I", "BRI"},
	{"MAND1RI", "MANDIRI"}, {"MANDIR1", "MANDIRI"}, {"MAND IRI", "MANDIRI"},
	{"BN1", "BNI"}, {"BN I", "BNI"}, {"B NI", "BNI"},
	{"SEAB ANK", "SEABANK"}, {"SEA BANK", "SEABANK"},
	{"DAN A", "DANA"}, {"D ANA", "DANA"},
}

var (
	nonNameRE    = regexp.MustCompile(`[^\w\s]`)
	multiSpaceRE = regexp.MustCompile(`\s+`)
)

// Correct normalizes one extracted text field. It is purely functional and
// idempotent: correcting an already-clean value is a no-op. Amounts are parsed
// numerically elsewhere and never pass through here.
func Correct(value string, kind FieldKind) string {
	v := strings.TrimSpace(value)
	switch kind {
	case FieldAmountText:
		v = strings.Map(func(r rune) rune {
			if r == 'B' {
				return '8'
			}
			if d, ok := digitConfusions[r]; ok {
				return d
			}
			return r
		}, v)
		v = strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == ',' {
				return r
			}
			return -1
		}, v)
	case FieldAccount:
		v = strings.Map(func(r rune) rune {
			switch r {
			case 'O', 'o':
				return '0'
			case 'I', 'l':
				return '1'
			}
			return r
		}, v)
		v = strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '*' {
				return r
			}
			return -1
		}, v)
	case FieldReference:
		v = strings.Map(func(r rune) rune {
			if d, ok := digitConfusions[r]; ok {
				return d
			}
			return r
		}, v)
		v = strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' {
				return r
			}
			return -1
		}, v)
	case FieldBank:
		v = strings.ToUpper(v)
		for _, m := range bankMisreads {
			if strings.Contains(v, m.wrong) {
				v = strings.ReplaceAll(v, m.wrong, m.right)
				break
			}
		}
	case FieldName:
		// Names keep their letters untouched: digit correction would corrupt
		// legitimate spellings. Only punctuation and stray whitespace go.
		v = nonNameRE.ReplaceAllString(v, "")
		v = strings.TrimSpace(multiSpaceRE.ReplaceAllString(v, " "))
	}
	return v
}

// CorrectRecord applies the field corrector to every text field of a record.
// The numeric amount is left alone.
func CorrectRecord(r *Record) {
	r.SenderName = Correct(r.SenderName, FieldName)
	r.ReceiverName = Correct(r.ReceiverName, FieldName)
	r.ReceiverBank = BankType(Correct(string(r.ReceiverBank), FieldBank))
	r.ReceiverAccount = Correct(r.ReceiverAccount, FieldAccount)
	r.ReferenceNumber = Correct(r.ReferenceNumber, FieldReference)
}
