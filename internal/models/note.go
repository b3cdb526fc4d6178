// Package models defines the domain types for the notebook.
package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category groups notes in the sqlite backend.
type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
)

// Categories lists every valid category in menu order.
var Categories = []Category{CategoryGeneral, CategoryWork, CategoryPersonal, CategoryStudy}

// ParseCategory trims and lower-cases raw. Empty input resolves to general.
// ok is false when raw names no known category.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryGeneral, true
	}
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return c, false
}

// SearchField names the single column a search matches against.
type SearchField string

const (
	FieldTitle    SearchField = "title"
	FieldContent  SearchField = "content"
	FieldCategory SearchField = "category"
)

// SearchFields lists the searchable fields in menu order.
var SearchFields = []SearchField{FieldTitle, FieldContent, FieldCategory}

// Note is a row in the notes table.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Important bool      `json:"is_important"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the fields a persisted note must carry.
func (n *Note) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.Content, validation.Required),
		validation.Field(&n.Category, validation.Required, validation.In(categoryValues()...)),
	)
}

func categoryValues() []any {
	out := make([]any, len(Categories))
	for i, c := range Categories {
		out[i] = c
	}
	return out
}

// Line is one note of the text backend. Position is 1-based and shifts when
// an earlier line is deleted.
type Line struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}
