package model

import "time"

// CartSnapshot stores a serialized cart under its storage key when carts
// are kept in the database instead of Redis.
type CartSnapshot struct {
	CartKey   string    `gorm:"primarykey;type:varchar(191)" json:"cart_key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
