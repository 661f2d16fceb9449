package service

import (
	"context"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
	"github.com/magala-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService implements CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		log:      log.With().Str("component", "comment_service").Logger(),
	}
}

// ListByArticle returns an article's comments as a reply tree, newest
// top-level comment first. The tree is rebuilt from the flat parentId index.
func (s *commentService) ListByArticle(ctx context.Context, articleID int) ([]*models.CommentNode, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, apperror.Database("failed to get article", err)
	}
	if article == nil {
		return nil, apperror.NotFound("article not found")
	}

	comments, err := s.comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, apperror.Database("failed to list comments", err)
	}
	return buildTree(comments), nil
}

// buildTree groups replies under their parents, preserving input order at
// each level. Replies whose parent is missing are treated as top-level.
func buildTree(comments []*models.CommentWithAuthor) []*models.CommentNode {
	nodes := make(map[int]*models.CommentNode, len(comments))
	ordered := make([]*models.CommentNode, 0, len(comments))
	for _, c := range comments {
		n := &models.CommentNode{CommentWithAuthor: *c, Replies: []*models.CommentNode{}}
		nodes[c.ID] = n
		ordered = append(ordered, n)
	}

	roots := []*models.CommentNode{}
	for _, n := range ordered {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

// Top returns the most liked comments across all articles
func (s *commentService) Top(ctx context.Context, limit int) ([]*models.CommentWithAuthor, error) {
	comments, err := s.comments.ListTop(ctx, clampLimit(limit))
	if err != nil {
		return nil, apperror.Database("failed to list top comments", err)
	}
	return comments, nil
}

// Create stores a new comment, optionally as a reply to another comment on
// the same article
func (s *commentService) Create(ctx context.Context, data *models.InsertComment) (*models.Comment, error) {
	if fields := validation.ValidateInsertComment(data); len(fields) > 0 {
		return nil, apperror.Validation("invalid comment", fields)
	}

	if data.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *data.ParentID)
		if err != nil {
			return nil, apperror.Database("failed to get parent comment", err)
		}
		if parent == nil {
			return nil, apperror.Validation("invalid comment", []apperror.FieldError{
				{Field: "parentId", Message: "parent comment does not exist", Value: *data.ParentID},
			})
		}
		if parent.ArticleID == nil || data.ArticleID == nil || *parent.ArticleID != *data.ArticleID {
			return nil, apperror.Validation("invalid comment", []apperror.FieldError{
				{Field: "parentId", Message: "parent comment belongs to a different article", Value: *data.ParentID},
			})
		}
	}

	comment, err := s.comments.Create(ctx, data)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, apperror.Database("failed to create comment", err)
	}

	s.log.Info().Int("id", comment.ID).Msg("Comment created")
	return comment, nil
}

// Like increments the comment's like counter
func (s *commentService) Like(ctx context.Context, id int) error {
	ok, err := s.comments.IncrementLikes(ctx, id)
	if err != nil {
		return apperror.Database("failed to record like", err)
	}
	if !ok {
		return apperror.NotFound("comment not found")
	}
	return nil
}

// Dislike increments the comment's dislike counter
func (s *commentService) Dislike(ctx context.Context, id int) error {
	ok, err := s.comments.IncrementDislikes(ctx, id)
	if err != nil {
		return apperror.Database("failed to record dislike", err)
	}
	if !ok {
		return apperror.NotFound("comment not found")
	}
	return nil
}
