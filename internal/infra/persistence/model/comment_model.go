package model

import "time"

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID   int64  `gorm:"column:owner_id;not null;index"`
	PostID    int64  `gorm:"column:post_id;not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID"`
}

func (CommentModel) TableName() string {
	return "comments"
}
