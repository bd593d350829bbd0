package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerEntryType string

const (
	LedgerDebit  LedgerEntryType = "DEBIT"
	LedgerCredit LedgerEntryType = "CREDIT"
)

// LedgerEntry records one balance movement of a user.
type LedgerEntry struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       int64           `json:"user_id" gorm:"not null;index"`
	Amount       int64           `json:"amount" gorm:"not null"`
	Type         LedgerEntryType `json:"type" gorm:"type:varchar(16);not null;index;check:type IN ('DEBIT','CREDIT')"`
	BookingID    *int64          `json:"booking_id,omitempty" gorm:"index"`
	BalanceAfter int64           `json:"balance_after" gorm:"not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (e *LedgerEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
