package models

import "time"

// User is a registered account. Created once at sign-up; never updated or
// deleted within this service.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
}
