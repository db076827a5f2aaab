package models

import "time"

// DiscussionThread is a forum post owned by a single user. Only the owner may
// mutate or delete it; UserID is fixed at creation.
type DiscussionThread struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImagePath string    `json:"image_path,omitempty"` // relative path of the stored attachment, if any
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // refreshed on every content change
}
