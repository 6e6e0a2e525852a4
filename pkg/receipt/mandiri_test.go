package receipt

import "testing"

const mandiriText = `Livin' by Mandiri
Transfer Berhasil
04 Des 2025 • 16:15:52 WIB • No. Ref. 2512041122006741849
Penerima
Sdr. OLIVIA JANE
Bank Mandiri - 1210006207728
Sumber Dana
GANI MUHAMMAD RAMADLAN
Bank Mandiri - .........9764
Total Transaksi
Rp 150.000`

func TestMandiriFull(t *testing.T) {
	r := ExtractText(mandiriText, BankMandiri, Paper58)

	if r.Date != "04 Des 2025" || r.Time != "16:15:52" {
		t.Fatalf("date/time %q %q", r.Date, r.Time)
	}
	if r.ReferenceNumber != "2512041122006741849" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
	if r.ReceiverName != "OLIVIA JANE" {
		t.Fatalf("receiver %q (honorific should be stripped)", r.ReceiverName)
	}
	if r.ReceiverAccount != "1210006207728" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.SenderName != "GANI MUHAMMAD RAMADLAN" {
		t.Fatalf("sender %q", r.SenderName)
	}
	if r.Amount != 150000 {
		t.Fatalf("amount %d", r.Amount)
	}
	if r.ReceiverBank != BankMandiri {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
}

func TestMandiriAmountNextLine(t *testing.T) {
	text := "Total Transaksi\nRp 1.000.000"
	r := ExtractText(text, BankMandiri, Paper58)
	if r.Amount != 1000000 {
		t.Fatalf("amount %d", r.Amount)
	}
}

func TestMandiriSkipsLabelAboveAccount(t *testing.T) {
	// a section label directly above the account row must not become a name
	text := `Penerima
Bank Mandiri - 1210006207728`
	r := ExtractText(text, BankMandiri, Paper58)
	if r.ReceiverName != placeholderReceiver {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
	if r.ReceiverAccount != "1210006207728" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
}
