package models

import "time"

// ReceiptRecord is the persisted result of one receipt extraction. The text
// fields mirror what the engine produced after correction; RawText keeps the
// recognizer output so a record can be re-parsed without re-running OCR.
type ReceiptRecord struct {
	ID              uint `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          uint    `gorm:"index;not null"`
	UploadID        *uint   `gorm:"index"`
	Upload          *Upload `gorm:"foreignKey:UploadID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Date            string  `gorm:"size:32"`
	Time            string  `gorm:"size:16"`
	SenderName      string  `gorm:"size:255"`
	ReceiverName    string  `gorm:"size:255;index"`
	Amount          int64   `gorm:"not null"`
	ReceiverBank    string  `gorm:"size:16"`
	ReceiverAccount string  `gorm:"size:64"`
	ReferenceNumber string  `gorm:"size:64"`
	AdminFee        int64
	PaperSize       string `gorm:"size:8"`
	BankType        string `gorm:"size:16;index"`
	RawText         string `gorm:"type:text"`
	// NeedsReview marks records that parsed but look wrong (e.g. zero amount)
	// so an operator can fix them before printing.
	NeedsReview bool   `gorm:"default:false;index"`
	ReviewNote  string `gorm:"size:255"`
}
