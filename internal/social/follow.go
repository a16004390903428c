package social

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/cache"
	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// Follow makes actor follow target. Following is not notified.
func (s *Service) Follow(ctx context.Context, actorID, targetID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.Follow")
	defer span.End()

	if actorID == targetID {
		return fmt.Errorf("cannot follow yourself: %w", models.ErrInvalidOperation)
	}
	if _, err := s.store.GetUser(ctx, targetID); err != nil {
		return err
	}

	following, err := s.store.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if following {
		return fmt.Errorf("already following user %d: %w", targetID, models.ErrAlreadyExists)
	}

	// A concurrent duplicate is rejected by the store's primary key.
	if err := s.store.CreateFollow(ctx, &models.Follow{
		FollowerID: actorID,
		FolloweeID: targetID,
		CreatedAt:  s.now(),
	}); err != nil {
		return err
	}

	s.follows.Add(ctx, 1)
	s.invalidate(ctx, cache.FollowCountsKey(actorID), cache.FollowCountsKey(targetID))
	s.logger.Debug("Follow created", zap.Int64("follower", actorID), zap.Int64("followee", targetID))
	return nil
}

// Unfollow removes the actor -> target edge
func (s *Service) Unfollow(ctx context.Context, actorID, targetID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.Unfollow")
	defer span.End()

	if err := s.store.DeleteFollow(ctx, actorID, targetID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("not following user %d: %w", targetID, models.ErrNotFound)
		}
		return err
	}

	s.invalidate(ctx, cache.FollowCountsKey(actorID), cache.FollowCountsKey(targetID))
	s.logger.Debug("Follow removed", zap.Int64("follower", actorID), zap.Int64("followee", targetID))
	return nil
}

// IsFollowing reports whether actor follows target
func (s *Service) IsFollowing(ctx context.Context, actorID, targetID int64) (bool, error) {
	return s.store.IsFollowing(ctx, actorID, targetID)
}

// ListFollowing returns the ids of users userID follows, ascending
func (s *Service) ListFollowing(ctx context.Context, userID int64) ([]int64, error) {
	return s.store.ListFollowing(ctx, userID)
}

// ListFollowers returns the ids of users following userID, ascending
func (s *Service) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	return s.store.ListFollowers(ctx, userID)
}

// Following returns the users userID follows
func (s *Service) Following(ctx context.Context, userID int64) ([]models.User, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.store.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.GetUsers(ctx, ids)
}

// Followers returns the users following userID
func (s *Service) Followers(ctx context.Context, userID int64) ([]models.User, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.store.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.GetUsers(ctx, ids)
}

// FollowCounts returns both sides of the user's graph, served from cache when possible
func (s *Service) FollowCounts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	key := cache.FollowCountsKey(userID)

	var counts models.FollowCounts
	err := s.cache.GetJSON(ctx, key, &counts)
	if err == nil {
		return counts, nil
	}
	if !errors.Is(err, cache.ErrCacheDisabled) && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("Failed to read follow counts from cache", zap.Int64("user_id", userID), zap.Error(err))
	}

	counts, err = s.store.CountFollows(ctx, userID)
	if err != nil {
		return models.FollowCounts{}, err
	}

	if err := s.cache.SetJSON(ctx, key, counts, countTTL); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		s.logger.Warn("Failed to cache follow counts", zap.Int64("user_id", userID), zap.Error(err))
	}
	return counts, nil
}
