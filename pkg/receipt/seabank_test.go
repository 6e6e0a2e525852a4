package receipt

import "testing"

const seabankBRIText = `Bukti Transfer
Waktu Transaksi 24 Jul 2025, 11:20
Dari Gani Muhammad Ramadlan
Ke Yulia Ningsih
BANK BRI: ttiitiinkg 504
Jumlah Transfer Rp 260.000
No. Transaksi 20250724435044619659`

func TestSeabankBRIMaskedAccount(t *testing.T) {
	r := ExtractText(seabankBRIText, BankSeabank, Paper58)

	if r.Date != "24 Jul 2025" || r.Time != "11:20" {
		t.Fatalf("date/time %q %q", r.Date, r.Time)
	}
	if r.SenderName != "GANI MUHAMMAD RAMADLAN" {
		t.Fatalf("sender %q", r.SenderName)
	}
	if r.ReceiverName != "YULIA NINGSIH" {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
	// the garbled mask keeps only the visible tail; the dropped leading
	// digit comes back from the suffix table
	if r.ReceiverAccount != "***********8504" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.ReceiverBank != BankBRI {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	if r.Amount != 260000 {
		t.Fatalf("amount %d", r.Amount)
	}
	if r.ReferenceNumber != "20250724435044619659" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
}

func TestSeabankStarAccountKept(t *testing.T) {
	text := `Ke Yulia Ningsih
BANK BRI: ********8532
Jumlah Transfer Rp 100.000`
	r := ExtractText(text, BankSeabank, Paper58)
	if r.ReceiverAccount != "********8532" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
}

func TestSeabankDanaDestination(t *testing.T) {
	text := `Waktu Transaksi 24 Jul 2025, 11:20
Dari Gani Muhammad Ramadlan
Ke WN DNID Santi Widiasari
Dana: 0812337
Jumlah Transfer Rp 50.000`
	r := ExtractText(text, BankSeabank, Paper58)

	if r.ReceiverBank != BankDana {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	// seven plain digits mean the mask run vanished: rebuild the 4+3 shape
	if r.ReceiverAccount != "0812****337" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.ReceiverName != "SANTI WIDIASARI" {
		t.Fatalf("wallet tag not stripped: %q", r.ReceiverName)
	}
}

func TestSeabankDanaDestinationWithoutAccount(t *testing.T) {
	text := `Dari Gani Muhammad Ramadlan
Ke WN DNID Santi Widiasari
Jumlah Transfer Rp 50.000`
	r := ExtractText(text, BankSeabank, Paper58)
	if r.ReceiverBank != BankDana {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	if r.ReceiverAccount != "" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
}

func TestSeabankInTextStarPattern(t *testing.T) {
	text := `Ke Yulia Ningsih
BANK ********8532
Jumlah Transfer Rp 75.000`
	r := ExtractText(text, BankSeabank, Paper58)
	if r.ReceiverAccount != "********8532" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.ReceiverBank != BankBRI {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
}

func TestSeabankBRILineTailDigits(t *testing.T) {
	text := `Ke Yulia Ningsih
Transfer BRI 8532
Jumlah Transfer Rp 75.000`
	r := ExtractText(text, BankSeabank, Paper58)
	if r.ReceiverAccount != "***********8532" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
}

func TestCleanSeabankNameJunkPrefix(t *testing.T) {
	if got := cleanSeabankName("J4 Yulia Ningsih", false); got != "YULIA NINGSIH" {
		t.Fatalf("got %q", got)
	}
	// the strip must not reduce a short name to nothing
	if got := cleanSeabankName("An Na", false); got != "AN NA" {
		t.Fatalf("got %q", got)
	}
}

func TestSeabankNameFallback(t *testing.T) {
	text := `Bukti Transfer
Jumlah Transfer Rp 10.000
Yulia Ningsih
No. Transaksi 123`
	r := ExtractText(text, BankSeabank, Paper58)
	if r.ReceiverName != "YULIA NINGSIH" {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
}
