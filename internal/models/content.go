package models

import "time"

// Content defaults applied at creation
const (
	DefaultContentRating = "All"
	DefaultContentType   = "Audio"
	DefaultAudioQuality  = "Standard"
)

// Content is one catalogue item. Its files live in the content directory named after its id.
type Content struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	ContentRating   string    `json:"contentRating"`
	ContentType     string    `json:"contentType"`
	DurationMinutes *int      `json:"durationMinutes"`
	TotalFiles      int       `json:"totalFiles"`
	AudioQuality    string    `json:"audioQuality"`
	Featured        bool      `json:"featured"`
	ViewCount       int       `json:"viewCount"`
	LikeCount       int       `json:"likeCount"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ContentTag is a tag as shown on a content detail page
type ContentTag struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ContentDetail is a content item with its tags
type ContentDetail struct {
	Content
	Tags []ContentTag `json:"tags"`
}

// CreateContentRequest holds the form fields of an admin upload
type CreateContentRequest struct {
	Title           string `validate:"required,max=255"`
	Description     string `validate:"required"`
	ContentRating   string `validate:"omitempty,max=20"`
	ContentType     string `validate:"omitempty,max=50"`
	DurationMinutes *int   `validate:"omitempty,gte=0"`
	AudioQuality    string `validate:"omitempty,max=20"`
	Featured        bool
	// CustomID is the administrator-supplied id as typed; leading zeros are kept for the directory name.
	CustomID string `validate:"omitempty,numeric"`
	TagIDs   []int
}

// FileInfo reports where uploaded files were placed
type FileInfo struct {
	ContentDir   string   `json:"contentDir"`
	AudioFiles   []string `json:"audioFiles"`
	ImageFiles   []string `json:"imageFiles"`
	TotalFiles   int      `json:"totalFiles"`
	UsedCustomID bool     `json:"usedCustomId"`
}

// CreateContentResult is returned after a content upload
type CreateContentResult struct {
	ContentID  int      `json:"contentId"`
	IsCustomID bool     `json:"isCustomId"`
	FileInfo   FileInfo `json:"fileInfo"`
}

// ContentIDCheck reports whether an id is free
type ContentIDCheck struct {
	ID              int      `json:"id"`
	Available       bool     `json:"available"`
	Message         string   `json:"message"`
	ExistingContent *Content `json:"existing_content,omitempty"`
}

// ContentIDSuggestion is the next free id
type ContentIDSuggestion struct {
	SuggestedID      int    `json:"suggested_id"`
	MaxExistingID    int    `json:"max_existing_id"`
	Message          string `json:"message"`
	IsNextSequential bool   `json:"is_next_sequential"`
}

// AdminStats is the admin dashboard summary
type AdminStats struct {
	TotalUsers    int `json:"totalUsers"`
	TotalContents int `json:"totalContents"`
	TotalViews    int `json:"totalViews"`
	TotalTags     int `json:"totalTags"`
}
