package model

import "time"

// User represents a registered account. The password hash never leaves the
// server: json:"-" keeps it out of every response body.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
