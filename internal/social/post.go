package social

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// PostInput holds the writable fields of a post. On update a nil field is
// left unchanged.
type PostInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// normalizeTags trims, lowercases and de-duplicates tag names
func normalizeTags(names []string) []models.Tag {
	seen := make(map[string]bool, len(names))
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, models.Tag{Name: name})
	}
	return tags
}

func validatePost(p *models.Post) error {
	if strings.TrimSpace(p.Title) == "" {
		return models.NewValidationError("title", "This field may not be blank.")
	}
	if utf8.RuneCountInString(p.Title) > 200 {
		return models.NewValidationError("title", "Ensure this field has no more than 200 characters.")
	}
	if strings.TrimSpace(p.Content) == "" {
		return models.NewValidationError("content", "This field may not be blank.")
	}
	return nil
}

// CreatePost publishes a post authored by actor
func (s *Service) CreatePost(ctx context.Context, actorID int64, in PostInput) (*models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.CreatePost")
	defer span.End()

	now := s.now()
	post := &models.Post{
		AuthorID:  actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Title != nil {
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Tags != nil {
		post.Tags = normalizeTags(*in.Tags)
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Debug("Post created", zap.Int64("post_id", post.ID), zap.Int64("author_id", actorID))
	return post, nil
}

// GetPost returns a post by id
func (s *Service) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.store.GetPost(ctx, id)
}

// UpdatePost changes the actor's own post
func (s *Service) UpdatePost(ctx context.Context, actorID, postID int64, in PostInput) (*models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.UpdatePost")
	defer span.End()

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, fmt.Errorf("post %d: %w", postID, models.ErrForbidden)
	}

	if in.Title != nil {
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Tags != nil {
		post.Tags = normalizeTags(*in.Tags)
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}
	post.UpdatedAt = s.now()

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes the actor's own post
func (s *Service) DeletePost(ctx context.Context, actorID, postID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.DeletePost")
	defer span.End()

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return fmt.Errorf("post %d: %w", postID, models.ErrForbidden)
	}
	return s.store.DeletePost(ctx, postID)
}

// ListPosts returns posts matching the filter, newest first
func (s *Service) ListPosts(ctx context.Context, filter models.PostFilter, page models.Page) ([]models.Post, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.ListPosts")
	defer span.End()

	filter.Search = strings.TrimSpace(filter.Search)
	filter.Tag = strings.ToLower(strings.TrimSpace(filter.Tag))
	return s.store.ListPosts(ctx, filter, page)
}

// Feed returns posts by the users userID follows, newest first
func (s *Service) Feed(ctx context.Context, userID int64, page models.Page) ([]models.Post, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.Feed")
	defer span.End()

	following, err := s.store.ListFollowing(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if len(following) == 0 {
		return []models.Post{}, 0, nil
	}
	return s.store.ListPosts(ctx, models.PostFilter{AuthorIDs: following}, page)
}
