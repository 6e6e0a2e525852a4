package receipt

import (
	"strings"
	"testing"
)

const bniText = `wondr by BNI
Transfer berhasil
06 Des 2025 • 04:41:51 WIB •
Ref ID: 20251206044147000158
Sumber dana
GANI MUHAMMAD
Penerima
Bpk. ANDI SETIAWAN
BNI • 0799641820
Rp1.000.755
Biaya admin Rp2.500`

func TestBNIFull(t *testing.T) {
	r := ExtractText(bniText, BankBNI, Paper58)

	if r.Date != "06 Des 2025" || r.Time != "04:41:51" {
		t.Fatalf("date/time %q %q", r.Date, r.Time)
	}
	if r.ReferenceNumber != "20251206044147000158" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
	if r.SenderName != "GANI MUHAMMAD" {
		t.Fatalf("sender %q", r.SenderName)
	}
	if r.ReceiverName != "ANDI SETIAWAN" {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
	if r.ReceiverAccount != "0799641820" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.Amount != 1000755 {
		t.Fatalf("fee shadowed the amount: %d", r.Amount)
	}
}

func TestBNIFeeNeverWins(t *testing.T) {
	text := "Biaya admin Rp2.500\nRp50.000"
	r := ExtractText(text, BankBNI, Paper58)
	if r.Amount != 50000 {
		t.Fatalf("amount %d", r.Amount)
	}
}

// Empty recognizer output still yields a fully-populated record.
func TestBNIEmptyTextDefaults(t *testing.T) {
	r := ExtractText("", BankBNI, Paper58)

	if r.SenderName != "PENGIRIM BNI" {
		t.Fatalf("sender %q", r.SenderName)
	}
	if r.ReceiverName != placeholderReceiver {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
	if r.Date == "" {
		t.Fatal("date empty")
	}
	if r.Amount != 0 {
		t.Fatalf("amount %d", r.Amount)
	}
	if !strings.HasPrefix(r.ReferenceNumber, "BNI") {
		t.Fatalf("synthetic reference %q", r.ReferenceNumber)
	}
	if r.ReceiverBank != BankBNI || r.BankType != BankBNI {
		t.Fatalf("bank %q / %q", r.ReceiverBank, r.BankType)
	}
}
