package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a row of the hosted "transactions" table. The storefront only
// reads it.
type Order struct {
	ID        int64           `gorm:"primarykey" json:"id"`
	UserID    string          `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Order) TableName() string {
	return "transactions"
}
