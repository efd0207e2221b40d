package entity

import "time"

// Category is a product category. Categories form a tree through ParentID
// (empty for roots). At most one category is flagged default; it is the
// implicit choice when a product is created without one.
type Category struct {
	ID        string
	ParentID  string
	Name      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
