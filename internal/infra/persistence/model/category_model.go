package model

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
