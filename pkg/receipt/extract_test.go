package receipt

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

type fakeRecognizer struct {
	text   string
	digits string
	err    error
}

func (f *fakeRecognizer) Recognize(path string) (string, error) {
	return f.text, f.err
}

func (f *fakeRecognizer) RecognizeDigits(path string) (string, error) {
	return f.digits, f.err
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "receipt.png")
	img := imaging.New(60, 90, color.NRGBA{255, 255, 255, 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save test image: %v", err)
	}
	return path
}

func TestNormalizeAddsBorder(t *testing.T) {
	src := writeTestImage(t)
	prep, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	defer removeTemp(prep)

	out, err := imaging.Open(prep)
	if err != nil {
		t.Fatalf("open normalized: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 60+2*padPx || b.Dy() != 90+2*padPx {
		t.Fatalf("bounds %v", b)
	}
}

func TestPipelineBankRecovery(t *testing.T) {
	rec := &fakeRecognizer{text: `Dari Gani Muhammad Ramadlan
Ke Yulia Ningsih
Jumlah Transfer Rp 260.000`}
	p := NewPipeline(rec, nil)

	r, raw, err := p.ExtractFile(writeTestImage(t), BankSeabank, Paper58)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw != rec.text {
		t.Fatalf("raw text %q", raw)
	}
	if r.ReceiverAccount != allMaskPlaceholder {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.ReceiverBank != BankBRI {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	if r.Amount != 260000 {
		t.Fatalf("amount %d", r.Amount)
	}
}

func TestPipelineDanaCropRecovery(t *testing.T) {
	rec := &fakeRecognizer{
		text: `Dari Gani Muhammad Ramadlan
Ke WN DNID Santi Widiasari
Jumlah Transfer Rp 50.000`,
		digits: "0812 **** 337",
	}
	p := NewPipeline(rec, nil)

	r, _, err := p.ExtractFile(writeTestImage(t), BankSeabank, Paper58)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if r.ReceiverBank != BankDana {
		t.Fatalf("bank %q", r.ReceiverBank)
	}
	if r.ReceiverAccount != "0812****337" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
	if r.ReceiverName != "SANTI WIDIASARI" {
		t.Fatalf("receiver %q", r.ReceiverName)
	}
}

func TestPipelineRecognizeFailureDegrades(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("tesseract crashed")}
	p := NewPipeline(rec, nil)

	r, raw, err := p.ExtractFile(writeTestImage(t), BankBNI, Paper58)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw != "" {
		t.Fatalf("raw %q", raw)
	}
	if r.SenderName != "PENGIRIM BNI" || r.ReceiverName != placeholderReceiver {
		t.Fatalf("defaults missing: %+v", r)
	}
}

func TestPipelineDanaCropBareDigits(t *testing.T) {
	rec := &fakeRecognizer{
		text: `Dari Gani Muhammad Ramadlan
Ke WN DNID Santi Widiasari
Jumlah Transfer Rp 50.000`,
		digits: "0812337",
	}
	p := NewPipeline(rec, nil)

	r, _, err := p.ExtractFile(writeTestImage(t), BankSeabank, Paper58)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if r.ReceiverAccount != "0812****337" {
		t.Fatalf("account %q", r.ReceiverAccount)
	}
}

func TestPipelineDecodeError(t *testing.T) {
	p := NewPipeline(&fakeRecognizer{}, nil)
	r, _, err := p.ExtractFile(filepath.Join(t.TempDir(), "missing.png"), BankBCA, Paper58)
	if !errors.Is(err, ErrDecodeImage) {
		t.Fatalf("expected decode error, got %v", err)
	}
	// a complete placeholder record must still come back
	if r.SenderName != "DEFAULT SENDER" || r.ReceiverName != "DEFAULT RECEIVER" {
		t.Fatalf("placeholder names missing: %+v", r)
	}
	if r.BankType != BankBCA || r.PaperSize != Paper58 {
		t.Fatalf("bank/paper not carried: %+v", r)
	}
	if r.ReferenceNumber == "" || r.Date == "" {
		t.Fatalf("reference/date empty: %+v", r)
	}
}
