package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// CreateComment adds a comment to the post and notifies the post's author
func (s *Service) CreateComment(ctx context.Context, actorID, postID int64, content string) (*models.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.CreateComment")
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("content", "This field may not be blank.")
	}

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  actorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateComment(ctx, comment); err != nil {
			return err
		}
		return s.notify(ctx, tx, actorID, post, models.VerbCommentedPost)
	})
	if err != nil {
		return nil, err
	}

	s.comments.Add(ctx, 1)
	s.afterNotify(ctx, actorID, post)
	return comment, nil
}

// GetComment returns a comment by id
func (s *Service) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	return s.store.GetComment(ctx, id)
}

// UpdateComment replaces the content of the actor's own comment
func (s *Service) UpdateComment(ctx context.Context, actorID, commentID int64, content string) (*models.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.UpdateComment")
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("content", "This field may not be blank.")
	}

	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, fmt.Errorf("comment %d: %w", commentID, models.ErrForbidden)
	}

	comment.Content = content
	comment.UpdatedAt = s.now()
	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment deletes the actor's own comment
func (s *Service) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.DeleteComment")
	defer span.End()

	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return fmt.Errorf("comment %d: %w", commentID, models.ErrForbidden)
	}
	return s.store.DeleteComment(ctx, commentID)
}

// ListComments returns the post's comments oldest first
func (s *Service) ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, int64, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.store.ListComments(ctx, postID, page)
}
