package receipt

import (
	"testing"
	"unicode/utf8"
)

func TestParseAmountStripsDecimals(t *testing.T) {
	if got := parseAmount("10.000,00"); got != 10000 {
		t.Fatalf("expected 10000 got %d", got)
	}
	if got := parseAmount("130,000.00"); got != 130000 {
		t.Fatalf("expected 130000 got %d", got)
	}
}

func TestParseAmountSeparators(t *testing.T) {
	if got := parseAmount("2,000,571"); got != 2000571 {
		t.Fatalf("expected 2000571 got %d", got)
	}
	if got := parseAmount("1.000.755"); got != 1000755 {
		t.Fatalf("expected 1000755 got %d", got)
	}
}

func TestParseAmountGarbage(t *testing.T) {
	if got := parseAmount(""); got != 0 {
		t.Fatalf("expected 0 for empty got %d", got)
	}
	if got := parseAmount("Rp"); got != 0 {
		t.Fatalf("expected 0 for no digits got %d", got)
	}
}

func TestSplitLinesTrims(t *testing.T) {
	lines := splitLines("  a \n\n b\r\n\n")
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("unexpected lines %#v", lines)
	}
}

func TestSnippetKeepsRunesWhole(t *testing.T) {
	if got := snippet("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	// cut point lands inside the 3-byte bullet Tesseract likes to emit
	got := snippet("aaaaa•zzz", 6)
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8: %q", got)
	}
	if got != "aaaaa…" {
		t.Fatalf("got %q", got)
	}
}
