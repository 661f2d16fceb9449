package models

import (
	"time"
)

// Comment represents a reader comment. ParentID references another comment
// to form a reply tree of arbitrary depth.
type Comment struct {
	ID           int       `json:"id" db:"id"`
	Content      string    `json:"content" db:"content"`
	ArticleID    *int      `json:"articleId" db:"article_id"`
	AuthorID     *int      `json:"authorId" db:"author_id"`
	ParentID     *int      `json:"parentId" db:"parent_id"`
	LikeCount    int       `json:"likeCount" db:"like_count"`
	DislikeCount int       `json:"dislikeCount" db:"dislike_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CommentWithAuthor is a comment joined with its optional author summary.
// Article is populated only by the top-comments query.
type CommentWithAuthor struct {
	Comment
	Author  *AuthorSummary  `json:"author"`
	Article *ArticleSummary `json:"article,omitempty"`
}

// CommentNode is a comment with its replies grouped beneath it. Trees are
// reconstructed at read time from the flat parentId index.
type CommentNode struct {
	CommentWithAuthor
	Replies []*CommentNode `json:"replies"`
}

// InsertComment carries the fields accepted when creating a comment
type InsertComment struct {
	Content   string `json:"content"`
	ArticleID *int   `json:"articleId"`
	AuthorID  *int   `json:"authorId"`
	ParentID  *int   `json:"parentId"`
}
