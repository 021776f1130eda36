package entity

import "time"

// Comment is a reply to a post. OwnerID is fixed at creation.
type Comment struct {
	ID        int64
	OwnerID   int64
	PostID    int64
	Content   string
	Author    *Author // populated on reads
	CreatedAt time.Time
	UpdatedAt time.Time
}
