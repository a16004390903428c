package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/internal/social"
)

// SocialStore is the postgres implementation of social.Store
type SocialStore struct {
	db *gorm.DB
}

// NewSocialStore creates a SocialStore
func NewSocialStore(db *gorm.DB) *SocialStore {
	return &SocialStore{db: db}
}

var _ social.Store = (*SocialStore)(nil)

// Transaction runs fn inside a database transaction
func (s *SocialStore) Transaction(ctx context.Context, fn func(tx social.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SocialStore{db: tx})
	})
}

// likePattern escapes LIKE wildcards in a user search term
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// Users

func (s *SocialStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error, "user")
}

func (s *SocialStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("user %d", id))
	}
	return &user, nil
}

func (s *SocialStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("user %q", username))
	}
	return &user, nil
}

func (s *SocialStore) UpdateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error, "user")
}

func (s *SocialStore) GetUsers(ctx context.Context, ids []int64) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Follows

func (s *SocialStore) CreateFollow(ctx context.Context, follow *models.Follow) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error
	return translate(err, fmt.Sprintf("follow %d->%d", follow.FollowerID, follow.FolloweeID))
}

func (s *SocialStore) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("follow %d->%d: %w", followerID, followeeID, models.ErrNotFound)
	}
	return nil
}

func (s *SocialStore) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (s *SocialStore) ListFollowing(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("followee_id").
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (s *SocialStore) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Order("follower_id").
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (s *SocialStore) CountFollows(ctx context.Context, userID int64) (models.FollowCounts, error) {
	var counts models.FollowCounts
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&counts.Followers).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&counts.Following).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// Posts

// resolveTags returns the stored tag for every name, creating missing ones
func resolveTags(tx *gorm.DB, tags []models.Tag) ([]models.Tag, error) {
	out := make([]models.Tag, 0, len(tags))
	for _, t := range tags {
		tag := models.Tag{Name: t.Name}
		if err := tx.Where(models.Tag{Name: t.Name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", t.Name, err)
		}
		out = append(out, tag)
	}
	return out, nil
}

func (s *SocialStore) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, post.Tags)
		if err != nil {
			return err
		}
		post.Tags = nil
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return translate(err, "post")
		}
		if len(tags) > 0 {
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		post.Tags = tags
		return nil
	})
}

func (s *SocialStore) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Tags").First(&post, id).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("post %d", id))
	}
	return &post, nil
}

func (s *SocialStore) UpdatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Post{ID: post.ID}).Updates(map[string]interface{}{
			"title":      post.Title,
			"content":    post.Content,
			"updated_at": post.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("post %d: %w", post.ID, models.ErrNotFound)
		}

		tags, err := resolveTags(tx, post.Tags)
		if err != nil {
			return err
		}
		assoc := tx.Model(&models.Post{ID: post.ID}).Association("Tags")
		if len(tags) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(tags)
		}
		if err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
}

// DeletePost removes the post with its tag links; comments and likes cascade
func (s *SocialStore) DeletePost(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Select("Tags").Delete(&models.Post{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, models.ErrNotFound)
	}
	return nil
}

const postHasTag = "EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = posts.id AND t.name %s ?)"

func (s *SocialStore) ListPosts(ctx context.Context, filter models.PostFilter, page models.Page) ([]models.Post, int64, error) {
	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Post{})
		if filter.AuthorID != 0 {
			q = q.Where("posts.author_id = ?", filter.AuthorID)
		}
		if filter.AuthorIDs != nil {
			q = q.Where("posts.author_id IN ?", filter.AuthorIDs)
		}
		if filter.Tag != "" {
			q = q.Where(fmt.Sprintf(postHasTag, "="), filter.Tag)
		}
		if filter.Search != "" {
			like := likePattern(filter.Search)
			q = q.Where("(posts.title ILIKE ? OR posts.content ILIKE ? OR "+fmt.Sprintf(postHasTag, "ILIKE")+")", like, like, like)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]models.Post, 0, page.Limit())
	err := query().
		Preload("Author").
		Preload("Tags").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Comments

func (s *SocialStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error, "comment")
}

func (s *SocialStore) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("comment %d", id))
	}
	return &comment, nil
}

func (s *SocialStore) UpdateComment(ctx context.Context, comment *models.Comment) error {
	result := s.db.WithContext(ctx).Model(&models.Comment{ID: comment.ID}).Updates(map[string]interface{}{
		"content":    comment.Content,
		"updated_at": comment.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", comment.ID, models.ErrNotFound)
	}
	return nil
}

func (s *SocialStore) DeleteComment(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *SocialStore) ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]models.Comment, 0, page.Limit())
	err := db.Where("post_id = ?", postID).
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&comments).Error
	return comments, total, err
}

// Likes

func (s *SocialStore) CreateLike(ctx context.Context, like *models.Like) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error
	return translate(err, fmt.Sprintf("like %d/%d", like.UserID, like.PostID))
}

func (s *SocialStore) DeleteLike(ctx context.Context, userID, postID int64) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("like %d/%d: %w", userID, postID, models.ErrNotFound)
	}
	return nil
}

func (s *SocialStore) HasLiked(ctx context.Context, userID, postID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *SocialStore) CountLikes(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// Notifications

func (s *SocialStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error, "notification")
}

func (s *SocialStore) GetNotification(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("notification %d", id))
	}
	return &n, nil
}

func (s *SocialStore) ListNotifications(ctx context.Context, recipientID int64, unreadOnly bool, page models.Page) ([]models.Notification, int64, error) {
	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
		if unreadOnly {
			q = q.Where("read = ?", false)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	list := make([]models.Notification, 0, page.Limit())
	err := query().
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&list).Error
	return list, total, err
}

func (s *SocialStore) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (s *SocialStore) MarkRead(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *SocialStore) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}
