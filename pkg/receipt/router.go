package receipt

// ExtractText parses recognized receipt text against the caller-selected bank
// layout. Unknown bank types never fail: they fall through to a generic
// placeholder record so the caller can proceed without special cases. For any
// input text, including the empty string, the returned record is fully
// populated.
func ExtractText(text string, bank BankType, paper PaperSize) Record {
	switch bank {
	case BankBCA:
		return extractBCA(text, bank, paper)
	case BankBRI:
		return extractBRI(text, bank, paper)
	case BankMandiri:
		return extractMandiri(text, bank, paper)
	case BankBNI:
		return extractBNI(text, bank, paper)
	case BankSeabank:
		return extractSeabank(text, bank, paper)
	case BankDana:
		return extractDana(text, bank, paper)
	default:
		return genericRecord(bank, paper)
	}
}

// genericRecord is a clearly-labeled placeholder for layouts the engine does
// not model. The non-zero amount keeps downstream rendering exercised.
func genericRecord(bank BankType, paper PaperSize) Record {
	return Record{
		Date:            todayDate(),
		SenderName:      "GENERIC SENDER",
		ReceiverName:    "GENERIC RECEIVER",
		Amount:          100000,
		ReceiverBank:    bank,
		ReferenceNumber: syntheticReference(bank),
		PaperSize:       paper,
		BankType:        bank,
	}
}
