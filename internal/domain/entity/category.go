package entity

// Category groups posts. Names are unique.
type Category struct {
	ID   int64
	Name string
}
