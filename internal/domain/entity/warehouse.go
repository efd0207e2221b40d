package entity

import "time"

// Warehouse is a stock location. One warehouse may be flagged default; it is
// the implicit location when a document omits one.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
