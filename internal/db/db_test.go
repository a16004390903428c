package db

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/socialapi/socialapi/internal/models"
)

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  logger.LogLevel
	}{
		{"DEBUG", logger.Info},
		{"info", logger.Warn},
		{"WARNING", logger.Error},
		{"error", logger.Silent},
		{"", logger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := gormLogLevel(tt.level); got != tt.want {
				t.Errorf("gormLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, models.ErrNotFound},
		{"duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), models.ErrAlreadyExists},
		{"foreign key", gorm.ErrForeignKeyViolated, models.ErrNotFound},
		{"other", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translate(tt.err, "thing"); !errors.Is(got, tt.want) {
				t.Errorf("translate() = %v, want %v", got, tt.want)
			}
		})
	}

	if translate(nil, "thing") != nil {
		t.Error("translate(nil) should be nil")
	}
}

func TestLikePattern(t *testing.T) {
	tests := map[string]string{
		"go":     "%go%",
		"100%":   `%100\%%`,
		"a_b":    `%a\_b%`,
		`back\s`: `%back\\s%`,
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}
