package receipt

import "testing"

const danaText = `DANA
Kirim Uang Rp300.000 ke GANI MUHAMMAD RAM - 21 Jul 2025 • 17:14
Detail Penerima
Nama GANI MUHAMMAD RAM
Seabank Indonesia ••••0190
ID DANA 0857-:4165
ID Transaksi 20250721101214100101
Total Bayar Rp300.000`

func TestDanaFull(t *testing.T) {
	r := ExtractText(danaText, BankDana, Paper58)

	if r.Date != "21 Jul 2025" || r.Time != "17:14" {
		t.Fatalf("date/time %q %q", r.Date, r.Time)
	}
	if r.SenderName != "0857****4165" {
		t.Fatalf("sender %q", r.SenderName)
	}
	if r.ReceiverName != "GANI MUHAMMAD RAM" {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
	if r.Amount != 300000 {
		t.Fatalf("amount %d", r.Amount)
	}
	if r.ReceiverBank != BankSeabank {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	if r.ReceiverAccount != "****0190" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.ReferenceNumber != "20250721101214100101" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
	if r.BankType != BankDana {
		t.Fatalf("bank type %q", r.BankType)
	}
}

func TestDanaWrappedTransactionID(t *testing.T) {
	text := `ID Transaksi 2025072110121410
0101123456789`
	r := ExtractText(text, BankDana, Paper58)
	if r.ReferenceNumber != "20250721101214100101123456789" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
}

func TestDanaStitchedShortRuns(t *testing.T) {
	text := `123456789012
1234567890123
12345678`
	r := ExtractText(text, BankDana, Paper58)
	if r.ReferenceNumber != "123456789012123456789012312345678" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
}

func TestDanaDefaultDestination(t *testing.T) {
	r := ExtractText("Kirim Uang Rp10.000 ke BUDI -", BankDana, Paper58)
	if r.ReceiverBank != BankSeabank {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	if r.Amount != 10000 {
		t.Fatalf("amount %d", r.Amount)
	}
	if r.ReceiverName != "BUDI" {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
}
