package models

import "time"

// DefaultTagColor is used when a tag is created without a color
const DefaultTagColor = "#007bff"

// Tag categorises contents
type Tag struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	FirstLetter *string   `json:"firstLetter"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TagFilter narrows a tag listing
type TagFilter struct {
	Category   string
	ActiveOnly bool
}

// TagList groups tags by category
type TagList struct {
	Tags           []Tag            `json:"tags"`
	TagsByCategory map[string][]Tag `json:"tagsByCategory"`
}

// CreateTagRequest is the body of POST /api/tags
type CreateTagRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
}

// UpdateTagRequest is the body of PATCH /api/tags/{id}; nil fields are left unchanged
type UpdateTagRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update changes nothing
func (r *UpdateTagRequest) IsEmpty() bool {
	return r.Name == nil && r.Category == nil && r.Description == nil &&
		r.Color == nil && r.IsActive == nil && r.SortOrder == nil
}
