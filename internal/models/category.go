package models

import (
	"time"
)

// Category groups articles under a named, color-tagged section
type Category struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CategorySummary is the category projection embedded in joined views
type CategorySummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// InsertCategory carries the fields accepted when creating a category.
// Slug is derived from Name by the service.
type InsertCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UpdateCategory carries a partial category update; nil fields are untouched
type UpdateCategory struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}
