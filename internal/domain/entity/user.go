// Package entity contains the core business objects of the blog.
package entity

import "time"

// User is an account that can sign in and own posts and comments.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // never leaves the service layer
	CreatedAt    time.Time
}

// Author is the public view of a User embedded in posts and comments.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AsAuthor returns the public summary of the user.
func (u *User) AsAuthor() *Author {
	if u == nil {
		return nil
	}

	return &Author{ID: u.ID, Username: u.Username}
}
