package model

import (
	"strings"
	"time"
)

// User is the identity-service account as seen by the storefront.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName is the local part of the email address.
func (u User) DisplayName() string {
	if at := strings.Index(u.Email, "@"); at >= 0 {
		return u.Email[:at]
	}
	return u.Email
}
