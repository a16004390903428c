package social

import (
	"context"

	"github.com/socialapi/socialapi/internal/models"
)

// UserStore persists accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// GetUsers returns the users with the given ids, in id order
	GetUsers(ctx context.Context, ids []int64) ([]models.User, error)
}

// FollowStore persists the follow graph. Both directions are indexed, so
// ListFollowing and ListFollowers never scan the whole edge set.
type FollowStore interface {
	// CreateFollow returns models.ErrAlreadyExists when the edge is present
	CreateFollow(ctx context.Context, follow *models.Follow) error
	// DeleteFollow returns models.ErrNotFound when there is no edge
	DeleteFollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	// ListFollowing returns the ids userID follows, ascending
	ListFollowing(ctx context.Context, userID int64) ([]int64, error)
	// ListFollowers returns the ids following userID, ascending
	ListFollowers(ctx context.Context, userID int64) ([]int64, error)
	CountFollows(ctx context.Context, userID int64) (models.FollowCounts, error)
}

// PostStore persists posts and their tags
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int64) error
	// ListPosts returns matching posts newest first and the total match count
	ListPosts(ctx context.Context, filter models.PostFilter, page models.Page) ([]models.Post, int64, error)
}

// CommentStore persists comments
type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int64) error
	// ListComments returns a post's comments oldest first
	ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, int64, error)
}

// LikeStore persists likes
type LikeStore interface {
	// CreateLike returns models.ErrAlreadyExists when the pair is present
	CreateLike(ctx context.Context, like *models.Like) error
	// DeleteLike returns models.ErrNotFound when there is no like
	DeleteLike(ctx context.Context, userID, postID int64) error
	HasLiked(ctx context.Context, userID, postID int64) (bool, error)
	CountLikes(ctx context.Context, postID int64) (int64, error)
}

// NotificationStore persists notifications
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, id int64) (*models.Notification, error)
	// ListNotifications returns a recipient's notifications newest first
	ListNotifications(ctx context.Context, recipientID int64, unreadOnly bool, page models.Page) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	// MarkAllRead returns how many notifications changed state
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
}

// Store is everything the social service persists
type Store interface {
	UserStore
	FollowStore
	PostStore
	CommentStore
	LikeStore
	NotificationStore

	// Transaction runs fn against a store whose writes commit together
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
