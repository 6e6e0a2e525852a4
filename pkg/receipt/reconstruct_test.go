package receipt

import "testing"

func TestApplySuffixFix(t *testing.T) {
	if got := applySuffixFix("504", "BANK BRI: ttiitiinkg 504"); got != "8504" {
		t.Fatalf("got %q", got)
	}
	if got := applySuffixFix("999", "BANK BRI 999"); got != "999" {
		t.Fatalf("unknown suffix changed: %q", got)
	}
}

func TestApplySuffixFixConditional531(t *testing.T) {
	if got := applySuffixFix("531", "BANK BRI kkk 531"); got != "2531" {
		t.Fatalf("got %q", got)
	}
	if got := applySuffixFix("531", "BANK BRI 531"); got != "531" {
		t.Fatalf("531 fixed without its marker: %q", got)
	}
}

type fakeLookup map[string]string

func (f fakeLookup) Lookup(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

func TestReconstructStarShape(t *testing.T) {
	got := reconstructBankAccount("Transfer\n***********8532\nselesai", "", nil)
	if got != "***********8532" {
		t.Fatalf("got %q", got)
	}
}

func TestReconstructLooseMaskCharset(t *testing.T) {
	// OCR renders the mask run as x/dot/8 soup; digits still close the line
	got := reconstructBankAccount("akun xxxxxxxx.8 8532", "", nil)
	if got != "***********8532" {
		t.Fatalf("got %q", got)
	}
}

func TestReconstructBankLineDigits(t *testing.T) {
	got := reconstructBankAccount("tujuan bank bri nomor 504", "", nil)
	if got != "***********8504" {
		t.Fatalf("got %q", got)
	}
}

func TestReconstructViaMapping(t *testing.T) {
	lk := fakeLookup{"YULIA NINGSIH": "***********8532"}
	got := reconstructBankAccount("tidak ada angka di sini", "Yulia Ningsih", lk)
	if got != "***********8532" {
		t.Fatalf("got %q", got)
	}
}

// every recovery step failing still yields the visible placeholder
func TestReconstructAllStepsFail(t *testing.T) {
	got := reconstructBankAccount("tidak ada angka di sini", "YULIA NINGSIH", nil)
	if got != allMaskPlaceholder {
		t.Fatalf("got %q", got)
	}
}

func TestFormatDanaMask(t *testing.T) {
	// exactly seven digits rebuild the vanished mask as 4 stars
	if got, ok := formatDanaMask("0812337"); !ok || got != "0812****337" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	// longer runs keep 4+3 visible digits behind 5 stars
	if got, ok := formatDanaMask("0812***55337"); !ok || got != "0812*****337" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := formatDanaMask("081233"); ok {
		t.Fatal("six digits accepted")
	}
}

func TestDanaCropBandsMatchedIndependently(t *testing.T) {
	prep, err := Normalize(writeTestImage(t))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	defer removeTemp(prep)

	// fragments that only form a phone shape when bands are glued together
	// must not yield an account
	if acct, ok := reconstructDanaAccount(&fakeRecognizer{digits: "2337"}, prep); ok {
		t.Fatalf("fabricated account %q from fragment digits", acct)
	}

	// a bare digit run carries the whole phone and is accepted as-is
	acct, ok := reconstructDanaAccount(&fakeRecognizer{digits: "0812337"}, prep)
	if !ok || acct != "0812****337" {
		t.Fatalf("got %q ok=%v", acct, ok)
	}
}
