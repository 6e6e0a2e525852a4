package receipt

import (
	"strconv"
	"time"
)

// BankType identifies a receipt layout or a transfer destination.
type BankType string

const (
	BankBCA     BankType = "BCA"
	BankBRI     BankType = "BRI"
	BankMandiri BankType = "MANDIRI"
	BankBNI     BankType = "BNI"
	BankSeabank BankType = "SEABANK"
	BankDana    BankType = "DANA"
	BankBSI     BankType = "BSI"
	BankFlip    BankType = "FLIP"
)

// PaperSize is the thermal paper width hint passed through to the renderer.
type PaperSize string

const (
	Paper58 PaperSize = "58mm"
	Paper80 PaperSize = "80mm"
)

// Record is the structured result of one receipt extraction. Every field is
// populated even when recognition fails; callers never see a partial record.
type Record struct {
	Date            string    `json:"date"`
	Time            string    `json:"time,omitempty"`
	SenderName      string    `json:"senderName"`
	ReceiverName    string    `json:"receiverName"`
	Amount          int64     `json:"amount"`
	ReceiverBank    BankType  `json:"receiverBank"`
	ReceiverAccount string    `json:"receiverAccount,omitempty"`
	ReferenceNumber string    `json:"referenceNumber"`
	AdminFee        int64     `json:"adminFee"`
	PaperSize       PaperSize `json:"paperSize"`
	BankType        BankType  `json:"bankType"`
}

const placeholderReceiver = "NAMA PENERIMA"

// refPrefixes are the codes prepended to synthesized reference numbers when a
// real one cannot be read off the receipt.
var refPrefixes = map[BankType]string{
	BankBCA:     "BCA",
	BankBRI:     "BRI",
	BankMandiri: "MDR",
	BankBNI:     "BNI",
	BankSeabank: "SEA",
	BankDana:    "DNA",
}

// syntheticReference builds a non-empty fallback reference: bank prefix plus
// the last 8 digits of the current timestamp.
func syntheticReference(bank BankType) string {
	prefix, ok := refPrefixes[bank]
	if !ok {
		prefix = string(bank)
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}
	return prefix + ts
}

// todayDate formats the current date the way the printed receipts show it
// (day/month/year, no zero padding).
func todayDate() string {
	return time.Now().Format("2/1/2006")
}

func placeholderSender(bank BankType) string {
	return "PENGIRIM " + string(bank)
}

// fillDefaults replaces any field the extractor left empty with its defensible
// default so the record is total regardless of OCR quality.
func fillDefaults(r *Record, bank BankType) {
	if r.Date == "" {
		r.Date = todayDate()
	}
	if r.SenderName == "" {
		r.SenderName = placeholderSender(bank)
	}
	if r.ReceiverName == "" {
		r.ReceiverName = placeholderReceiver
	}
	if r.Amount < 0 {
		r.Amount = 0
	}
	if r.ReferenceNumber == "" {
		r.ReferenceNumber = syntheticReference(bank)
	}
}

// DefaultRecord is returned when the pipeline cannot even reach extraction
// (e.g. the image failed to decode).
func DefaultRecord(bank BankType, paper PaperSize) Record {
	return Record{
		Date:            todayDate(),
		SenderName:      "DEFAULT SENDER",
		ReceiverName:    "DEFAULT RECEIVER",
		Amount:          50000,
		ReceiverBank:    bank,
		ReferenceNumber: syntheticReference(bank),
		PaperSize:       paper,
		BankType:        bank,
	}
}
