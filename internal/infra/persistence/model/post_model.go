package model

import "time"

// PostModel mirrors the 'posts' table. Owner is preloaded for author summaries.
type PostModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID    int64  `gorm:"column:owner_id;not null;index"`
	CategoryID *int64 `gorm:"column:category_id;index"`
	Title      string `gorm:"type:varchar(200);not null"`
	Content    string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID"`
}

func (PostModel) TableName() string {
	return "posts"
}
