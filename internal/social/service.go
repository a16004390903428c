package social

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/cache"
	"github.com/socialapi/socialapi/pkg/logging"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// Service implements the social graph: accounts, follows, posts, comments,
// likes and notifications
type Service struct {
	store  Store
	cache  *cache.Cache
	logger *zap.Logger
	now    func() time.Time

	follows       metric.Int64Counter
	likes         metric.Int64Counter
	comments      metric.Int64Counter
	notifications metric.Int64Counter
}

// countTTL bounds how long a count cached from a read that raced a write
// can stay stale after that write's invalidation.
const countTTL = 30 * time.Second

// NewService creates a Service. cache may be nil.
func NewService(store Store, c *cache.Cache) *Service {
	meter := telemetry.Meter("social")
	return &Service{
		store:  store,
		cache:  c,
		logger: logging.WithComponent("social"),
		now:    func() time.Time { return time.Now().UTC() },

		follows:       telemetry.Counter(meter, "social_follows_total", "Follow edges created"),
		likes:         telemetry.Counter(meter, "social_likes_total", "Likes created"),
		comments:      telemetry.Counter(meter, "social_comments_total", "Comments created"),
		notifications: telemetry.Counter(meter, "social_notifications_total", "Notifications written"),
	}
}

// invalidate drops cached keys; a disabled cache is not an error
func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		s.logger.Warn("Failed to invalidate cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
