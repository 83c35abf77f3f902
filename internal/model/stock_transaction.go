package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types for stock movements
const (
	TransactionIn         = "IN"
	TransactionOut        = "OUT"
	TransactionAdjustment = "ADJUSTMENT"
)

// StockTransaction is an append-only record of a stock movement. It is not
// consumed by the stock classifier; quantity on hand lives on the Item row.
type StockTransaction struct {
	ID              string    `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID          *string   `json:"item_id" gorm:"type:uuid"`
	TransactionType string    `json:"transaction_type" gorm:"type:varchar(20);not null"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	TransactionDate time.Time `json:"transaction_date"`
	UserID          *string   `json:"user_id" gorm:"type:uuid"`
	Notes           *string   `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`

	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (t *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now()
	}
	return nil
}
