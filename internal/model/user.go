package model

import "time"

// User represents a storefront customer, both in the server database and in
// the client's local cache.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:255;not null;index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255"` // Never expose in JSON
	PictureURL   string    `json:"picture_url,omitempty" gorm:"size:512"`
	DateOfBirth  string    `json:"date_of_birth,omitempty" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
