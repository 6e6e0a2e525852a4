package models

import "time"

// AccountMapping remembers the masked account last seen for a receiver name,
// so a receipt whose account region the recognizer destroyed can still be
// filled from history. Names are stored uppercase.
type AccountMapping struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ReceiverName  string `gorm:"size:255;not null;uniqueIndex"`
	MaskedAccount string `gorm:"size:64;not null"`
	BankCode      string `gorm:"size:16"`
}
