package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// Like records that actor likes the post and notifies its author.
// Every successful like notifies, including a like after an unlike.
func (s *Service) Like(ctx context.Context, actorID, postID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.Like")
	defer span.End()

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID == actorID {
		return fmt.Errorf("cannot like your own post: %w", models.ErrInvalidOperation)
	}

	err = s.store.Transaction(ctx, func(tx Store) error {
		liked, err := tx.HasLiked(ctx, actorID, postID)
		if err != nil {
			return err
		}
		if liked {
			return fmt.Errorf("post %d already liked: %w", postID, models.ErrAlreadyExists)
		}
		if err := tx.CreateLike(ctx, &models.Like{
			UserID:    actorID,
			PostID:    postID,
			CreatedAt: s.now(),
		}); err != nil {
			return err
		}
		return s.notify(ctx, tx, actorID, post, models.VerbLikedPost)
	})
	if err != nil {
		return err
	}

	s.likes.Add(ctx, 1)
	s.afterNotify(ctx, actorID, post)
	return nil
}

// Unlike removes the actor's like from the post
func (s *Service) Unlike(ctx context.Context, actorID, postID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.Unlike")
	defer span.End()

	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return err
	}
	if err := s.store.DeleteLike(ctx, actorID, postID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("post %d not liked: %w", postID, models.ErrNotFound)
		}
		return err
	}
	return nil
}

// LikeCount returns how many users like the post
func (s *Service) LikeCount(ctx context.Context, postID int64) (int64, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return 0, err
	}
	return s.store.CountLikes(ctx, postID)
}

// HasLiked reports whether actor likes the post
func (s *Service) HasLiked(ctx context.Context, actorID, postID int64) (bool, error) {
	return s.store.HasLiked(ctx, actorID, postID)
}
