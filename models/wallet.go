package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet represents a user's stored-value balance. The balance always equals
// the signed sum of the wallet's transactions; debits are guarded so it never
// goes negative.
type Wallet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex"`
	Balance   float64        `json:"balance" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// WalletTransaction is one entry in the append-only wallet ledger. Entries
// are never edited or deleted.
type WalletTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WalletID    uint      `json:"wallet_id" gorm:"index"`
	Wallet      Wallet    `json:"-" gorm:"foreignKey:WalletID"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // "credit" or "debit"
	Description string    `json:"description"`
	OrderID     *uint     `json:"order_id"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionType constants
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)
