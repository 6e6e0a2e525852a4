package models

import "time"

// Upload represents one receipt image received for extraction, either via the
// HTTP API or the inbox watcher.
type Upload struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FileName    string `gorm:"size:255;not null;index"`
	StorePath   string `gorm:"column:store_path;size:512"`
	UserID      uint   `gorm:"index;not null"`
	User        User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ContentType string `gorm:"size:128"`
	BankType    string `gorm:"size:16"`
	PaperSize   string `gorm:"size:8"`
	// Mark upload as failed so the record stays reviewable instead of vanishing.
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
