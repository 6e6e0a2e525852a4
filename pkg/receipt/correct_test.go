package receipt

import "testing"

func TestCorrectAccountDigitconfusions(t *testing.T) {
	if got := Correct("O799l6418", FieldAccount); got != "079916418" {
		t.Fatalf("got %q", got)
	}
	// masks survive
	if got := Correct("***********8504", FieldAccount); got != "***********8504" {
		t.Fatalf("got %q", got)
	}
}

func TestCorrectAmountText(t *testing.T) {
	if got := Correct("1O0.0OO", FieldAmountText); got != "100.000" {
		t.Fatalf("got %q", got)
	}
	if got := Correct("2B.500", FieldAmountText); got != "28.500" {
		t.Fatalf("got %q", got)
	}
}

func TestCorrectBankMisreads(t *testing.T) {
	if got := Correct("B RI", FieldBank); got != "BRI" {
		t.Fatalf("got %q", got)
	}
	if got := Correct("mand1ri", FieldBank); got != "MANDIRI" {
		t.Fatalf("got %q", got)
	}
	if got := Correct("BRI", FieldBank); got != "BRI" {
		t.Fatalf("clean value changed: %q", got)
	}
}

func TestCorrectNameKeepsLetters(t *testing.T) {
	if got := Correct("SANTI  WIDIASARI.", FieldName); got != "SANTI WIDIASARI" {
		t.Fatalf("got %q", got)
	}
	// letter-to-digit rules never touch names
	if got := Correct("OLIVIA", FieldName); got != "OLIVIA" {
		t.Fatalf("got %q", got)
	}
}

func TestCorrectIdempotent(t *testing.T) {
	cases := []struct {
		v string
		k FieldKind
	}{
		{"SANTI WIDIASARI", FieldName},
		{"***********8504", FieldAccount},
		{"130.000", FieldAmountText},
		{"095707273613", FieldReference},
		{"SEABANK", FieldBank},
	}
	for _, c := range cases {
		once := Correct(c.v, c.k)
		twice := Correct(once, c.k)
		if once != twice {
			t.Fatalf("not idempotent for kind %d: %q -> %q -> %q", c.k, c.v, once, twice)
		}
	}
}

func TestCorrectRecordLeavesAmount(t *testing.T) {
	r := Record{
		SenderName:      " PENGIRIM  BRI ",
		ReceiverName:    "WARSA DIANA",
		Amount:          130000,
		ReceiverBank:    "B RI",
		ReceiverAccount: "36111623O1",
		ReferenceNumber: "O95707273613",
	}
	CorrectRecord(&r)
	if r.Amount != 130000 {
		t.Fatalf("amount changed: %d", r.Amount)
	}
	if r.ReceiverBank != BankBRI {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	if r.ReceiverAccount != "3611162301" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.ReferenceNumber != "095707273613" {
		t.Fatalf("reference %q", r.ReferenceNumber)
	}
	if r.SenderName != "PENGIRIM BRI" {
		t.Fatalf("sender %q", r.SenderName)
	}
}
