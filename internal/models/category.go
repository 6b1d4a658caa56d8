package models

// CategoryKind mirrors domain.CategoryKind at the storage layer.
type CategoryKind string

// Category is the categories table row. System categories have an empty
// user_id and is_system = true.
type Category struct {
	CategoryID string       `db:"category_id"`
	UserID     string       `db:"user_id"`
	Name       string       `db:"name"`
	Kind       CategoryKind `db:"kind"`
	Icon       string       `db:"icon"`
	Color      string       `db:"color"`
	IsSystem   bool         `db:"is_system"`

	AuditFields
}
