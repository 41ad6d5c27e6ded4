package model

import "time"

// User mirrors the `users` table. The password hash is never serialized.
// Nickname and Contact are the profile fields joined into gallery
// responses.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Nickname     string    `json:"nickname"`
	Contact      string    `json:"contact"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
