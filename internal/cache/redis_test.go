package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialapi/socialapi/pkg/config"
)

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "socialapi:test",
		},
		{
			name:     "follow counts",
			key:      FollowCountsKey(42),
			expected: "socialapi:follow_counts:42",
		},
		{
			name:     "unread count",
			key:      UnreadCountKey(7),
			expected: "socialapi:unread:7",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "socialapi:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDisabledCache(t *testing.T) {
	c, err := New(&config.RedisConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c != nil {
		t.Fatal("disabled cache should be nil")
	}

	ctx := context.Background()
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Get() error = %v, want ErrCacheDisabled", err)
	}
	if err := c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("SetJSON() error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Delete(ctx, "k"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Delete() error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewInvalidURL(t *testing.T) {
	if _, err := New(&config.RedisConfig{Enabled: true, URL: "://bad"}); err == nil {
		t.Error("expected error for invalid redis url")
	}
}
