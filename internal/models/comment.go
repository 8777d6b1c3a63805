package models

import "time"

// MaxCommentLength is the longest comment accepted
const MaxCommentLength = 1000

// Comment is a user comment on a content item
type Comment struct {
	ID          int       `json:"id"`
	ContentID   int       `json:"contentId"`
	UserID      int       `json:"userId"`
	Username    string    `json:"username"`
	CommentText string    `json:"commentText"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserComment is a comment listed on a user's page, with the content title
type UserComment struct {
	Comment
	ContentTitle string `json:"contentTitle"`
}

// CreateCommentRequest is the body of POST /api/comments
type CreateCommentRequest struct {
	ContentID   int    `json:"contentId" validate:"required,gt=0"`
	CommentText string `json:"commentText" validate:"required,max=1000"`
}

// UpdateCommentRequest is the body of PATCH /api/comments/{id}
type UpdateCommentRequest struct {
	CommentText string `json:"commentText" validate:"required,max=1000"`
}

// UserCommentList is a page of one user's comments
type UserCommentList struct {
	User       *User         `json:"user"`
	Comments   []UserComment `json:"comments"`
	Pagination Pagination    `json:"pagination"`
}
