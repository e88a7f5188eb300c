package models

import "time"

// Post is a forum message. Creator is populated on reads and may be nil
// when the creating user no longer exists.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatorID string    `json:"creator_id"`
	Creator   *User     `json:"creator,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
