package entity

import "time"

// Post is a blog article. OwnerID is fixed at creation.
type Post struct {
	ID         int64
	OwnerID    int64
	CategoryID *int64
	Title      string
	Content    string
	Author     *Author // populated on reads
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PostFilter narrows post listings. Zero values mean "any"; a zero Limit
// means no limit.
type PostFilter struct {
	OwnerID    int64
	CategoryID int64
	Offset     int
	Limit      int
}
