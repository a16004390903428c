package social

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/cache"
	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// notify writes one notification for the owner of a post, unless the owner
// is the actor. It runs inside the caller's transaction.
func (s *Service) notify(ctx context.Context, tx Store, actorID int64, post *models.Post, verb string) error {
	if post.AuthorID == actorID {
		return nil
	}

	n := &models.Notification{
		RecipientID: post.AuthorID,
		ActorID:     actorID,
		Verb:        verb,
		TargetType:  models.TargetTypePost,
		TargetID:    post.ID,
		CreatedAt:   s.now(),
	}
	if err := tx.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug("[NOTIFY] notification created",
		zap.String("type", models.NotificationTypeName(verb)),
		zap.Int64("recipient_id", n.RecipientID),
		zap.Int64("actor_id", n.ActorID),
		zap.Int64("post_id", n.TargetID))
	return nil
}

// afterNotify runs once the notifying transaction has committed
func (s *Service) afterNotify(ctx context.Context, actorID int64, post *models.Post) {
	if post.AuthorID == actorID {
		return
	}
	s.notifications.Add(ctx, 1)
	s.invalidate(ctx, cache.UnreadCountKey(post.AuthorID))
}

// ListNotifications returns the recipient's notifications, newest first
func (s *Service) ListNotifications(ctx context.Context, recipientID int64, page models.Page) ([]models.Notification, int64, error) {
	return s.store.ListNotifications(ctx, recipientID, false, page)
}

// UnreadCount returns how many unread notifications the recipient has
func (s *Service) UnreadCount(ctx context.Context, recipientID int64) (int64, error) {
	key := cache.UnreadCountKey(recipientID)

	val, err := s.cache.Get(ctx, key)
	if err == nil {
		if n, perr := strconv.ParseInt(val, 10, 64); perr == nil {
			return n, nil
		}
	} else if !errors.Is(err, cache.ErrCacheDisabled) && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("Failed to read unread count from cache", zap.Int64("user_id", recipientID), zap.Error(err))
	}

	count, err := s.store.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Set(ctx, key, count, countTTL); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		s.logger.Warn("Failed to cache unread count", zap.Int64("user_id", recipientID), zap.Error(err))
	}
	return count, nil
}

// UnreadNotifications returns the unread count and the unread notifications
func (s *Service) UnreadNotifications(ctx context.Context, recipientID int64, page models.Page) (int64, []models.Notification, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.UnreadNotifications")
	defer span.End()

	count, err := s.UnreadCount(ctx, recipientID)
	if err != nil {
		return 0, nil, err
	}
	list, _, err := s.store.ListNotifications(ctx, recipientID, true, page)
	if err != nil {
		return 0, nil, err
	}
	return count, list, nil
}

// MarkRead marks one of the recipient's notifications as read. Marking a
// read notification again succeeds and leaves it read.
func (s *Service) MarkRead(ctx context.Context, recipientID, notificationID int64) (*models.Notification, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.MarkRead")
	defer span.End()

	n, err := s.store.GetNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	// Someone else's notification is reported as missing.
	if n.RecipientID != recipientID {
		return nil, fmt.Errorf("notification %d: %w", notificationID, models.ErrNotFound)
	}
	if n.Read {
		return n, nil
	}

	if err := s.store.MarkRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.Read = true
	s.invalidate(ctx, cache.UnreadCountKey(recipientID))
	return n, nil
}

// MarkAllRead marks every unread notification of the recipient as read
func (s *Service) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.MarkAllRead")
	defer span.End()

	changed, err := s.store.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		s.invalidate(ctx, cache.UnreadCountKey(recipientID))
	}
	return changed, nil
}
