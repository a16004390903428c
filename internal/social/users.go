package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/auth"
	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// Registration is the input to Register
type Registration struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Bio       string
}

// ProfileUpdate holds the profile fields to change; nil leaves a field as is
type ProfileUpdate struct {
	Email          *string
	Bio            *string
	ProfilePicture *string
}

// Register creates an account with a hashed password
func (s *Service) Register(ctx context.Context, r Registration) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.Register")
	defer span.End()

	if r.Password != r.Password2 {
		return nil, models.NewValidationError("password", "Password fields didn't match.")
	}

	// bcrypt only reads the first 72 bytes and x/crypto rejects longer input
	if len(r.Password) > auth.MaxPasswordBytes {
		return nil, models.NewValidationError("password",
			fmt.Sprintf("Ensure this field has no more than %d bytes.", auth.MaxPasswordBytes))
	}

	username := strings.TrimSpace(r.Username)
	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return nil, models.NewValidationError("username", "A user with that username already exists.")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(r.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(r.Email),
		PasswordHash: hash,
		Bio:          r.Bio,
		Role:         models.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Authenticate checks credentials and returns the user
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.Authenticate")
	defer span.End()

	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
		}
		return nil, err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}
	return user, nil
}

// UserByUsername returns a user by exact username
func (s *Service) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
}

// GetUser returns a user by id
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// UpdateProfile applies a partial profile update to the user
func (s *Service) UpdateProfile(ctx context.Context, userID int64, u ProfileUpdate) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.UpdateProfile")
	defer span.End()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Email != nil {
		user.Email = strings.TrimSpace(*u.Email)
	}
	if u.Bio != nil {
		user.Bio = *u.Bio
	}
	if u.ProfilePicture != nil {
		user.ProfilePicture = *u.ProfilePicture
	}
	user.UpdatedAt = s.now()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole changes a user's role. Only admins may do it and an admin cannot
// demote themselves, so at least one admin remains.
func (s *Service) SetRole(ctx context.Context, actorID, userID int64, role string) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.SetRole")
	defer span.End()

	if !models.ValidRole(role) {
		return nil, models.NewValidationError("role", fmt.Sprintf("%q is not a valid choice.", role))
	}
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.HasRole(models.RoleAdmin) {
		return nil, fmt.Errorf("changing roles: %w", models.ErrForbidden)
	}
	if actorID == userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("cannot demote yourself: %w", models.ErrInvalidOperation)
	}
	return s.GrantRole(ctx, userID, role)
}

// GrantRole sets a user's role without checking who asks. Used to bootstrap
// the first admin.
func (s *Service) GrantRole(ctx context.Context, userID int64, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, models.NewValidationError("role", fmt.Sprintf("%q is not a valid choice.", role))
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.UpdatedAt = s.now()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User role changed", zap.Int64("user_id", userID), zap.String("role", role))
	return user, nil
}
