package receipt

import "testing"

const briText = `BRImo
Transfer Berhasil
25 Juli 2025, 10:02:40 WIB
Sumber Dana
GANI MUHAMMAD RAMADLAN
BANK BRI
**** **** **** 2531
Tujuan
SANTI WIDIASARI
BANK BRI
3611 1623 0123 45
Nominal Rp260.000
Total Transaksi
Rp260.000
No. Ref 123456789012`

func TestBRIFull(t *testing.T) {
	r := ExtractText(briText, BankBRI, Paper58)

	if r.Date != "25 Juli 2025" || r.Time != "10:02:40" {
		t.Fatalf("date/time %q %q", r.Date, r.Time)
	}
	if r.SenderName != "GANI MUHAMMAD RAMADLAN" {
		t.Fatalf("sender %q", r.SenderName)
	}
	if r.ReceiverName != "SANTI WIDIASARI" {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
	if r.ReceiverAccount != "3611 1623 0123 45" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.Amount != 260000 {
		t.Fatalf("amount %d", r.Amount)
	}
	if r.ReferenceNumber != "123456789012" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
}

func TestBRISenderAccountSuppressed(t *testing.T) {
	// digits inside the Sumber Dana block belong to the sender, not the
	// destination
	text := `Sumber Dana
GANI MUHAMMAD RAMADLAN
6013 0102 9437 538
Tujuan
SANTI WIDIASARI`
	r := ExtractText(text, BankBRI, Paper58)
	if r.ReceiverAccount != "" {
		t.Fatalf("sender digits leaked into account: %q", r.ReceiverAccount)
	}
}

func TestBRIContinuousAccountRun(t *testing.T) {
	text := `Tujuan
SANTI WIDIASARI
BANK BRI 361116230123456`
	r := ExtractText(text, BankBRI, Paper58)
	if r.ReceiverAccount != "3611 1623 0123 456" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
}

func TestBRIRefOnNextLine(t *testing.T) {
	text := "No. Re\nBR1234567"
	r := ExtractText(text, BankBRI, Paper58)
	if r.ReferenceNumber != "BR1234567" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
}

func TestBRIMaskedSenderRejected(t *testing.T) {
	text := `Sumber Dana
**** **** 2531
GANI MUHAMMAD RAMADLAN`
	r := ExtractText(text, BankBRI, Paper58)
	if r.SenderName != "GANI MUHAMMAD RAMADLAN" {
		t.Fatalf("sender %q", r.SenderName)
	}
}
