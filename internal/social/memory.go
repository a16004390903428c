package social

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/socialapi/socialapi/internal/models"
)

// MemoryStore is a Store kept in process memory. The follow graph is held
// as two adjacency sets so both directions are direct lookups.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	lastID map[string]int64

	users     map[int64]models.User
	usernames map[string]int64
	emails    map[string]int64

	following map[int64]map[int64]struct{}
	followers map[int64]map[int64]struct{}

	posts    map[int64]models.Post
	tags     map[string]int64
	comments map[int64]models.Comment
	likes    map[int64]map[int64]struct{} // post -> users

	notifications map[int64]models.Notification
	inbox         map[int64][]int64 // recipient -> notification ids, oldest first
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lastID:        make(map[string]int64),
		users:         make(map[int64]models.User),
		usernames:     make(map[string]int64),
		emails:        make(map[string]int64),
		following:     make(map[int64]map[int64]struct{}),
		followers:     make(map[int64]map[int64]struct{}),
		posts:         make(map[int64]models.Post),
		tags:          make(map[string]int64),
		comments:      make(map[int64]models.Comment),
		likes:         make(map[int64]map[int64]struct{}),
		notifications: make(map[int64]models.Notification),
		inbox:         make(map[int64][]int64),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) nextID(table string) int64 {
	m.lastID[table]++
	return m.lastID[table]
}

// Transaction serializes fn against other transactions. Writes are applied
// immediately and are not rolled back when fn fails.
func (m *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

// Users

func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.usernames[user.Username]; ok {
		return fmt.Errorf("username %q: %w", user.Username, models.ErrAlreadyExists)
	}
	if _, ok := m.emails[user.Email]; ok {
		return fmt.Errorf("email %q: %w", user.Email, models.ErrAlreadyExists)
	}

	user.ID = m.nextID("users")
	m.users[user.ID] = *user
	m.usernames[user.Username] = user.ID
	m.emails[user.Email] = user.ID
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	return &u, nil
}

func (m *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
	}
	u := m.users[id]
	return &u, nil
}

func (m *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.users[user.ID]
	if !ok {
		return fmt.Errorf("user %d: %w", user.ID, models.ErrNotFound)
	}
	newEmail := user.Email
	if id, taken := m.emails[newEmail]; taken && id != user.ID {
		return fmt.Errorf("email %q: %w", user.Email, models.ErrAlreadyExists)
	}
	delete(m.emails, old.Email)
	m.emails[newEmail] = user.ID
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) GetUsers(ctx context.Context, ids []int64) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Follows

func (m *MemoryStore) CreateFollow(ctx context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.following[follow.FollowerID][follow.FolloweeID]; ok {
		return fmt.Errorf("follow %d->%d: %w", follow.FollowerID, follow.FolloweeID, models.ErrAlreadyExists)
	}
	addEdge(m.following, follow.FollowerID, follow.FolloweeID)
	addEdge(m.followers, follow.FolloweeID, follow.FollowerID)
	return nil
}

func (m *MemoryStore) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.following[followerID][followeeID]; !ok {
		return fmt.Errorf("follow %d->%d: %w", followerID, followeeID, models.ErrNotFound)
	}
	delete(m.following[followerID], followeeID)
	delete(m.followers[followeeID], followerID)
	return nil
}

func (m *MemoryStore) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.following[followerID][followeeID]
	return ok, nil
}

func (m *MemoryStore) ListFollowing(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.following[userID]), nil
}

func (m *MemoryStore) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.followers[userID]), nil
}

func (m *MemoryStore) CountFollows(ctx context.Context, userID int64) (models.FollowCounts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return models.FollowCounts{
		Followers: int64(len(m.followers[userID])),
		Following: int64(len(m.following[userID])),
	}, nil
}

func addEdge(index map[int64]map[int64]struct{}, from, to int64) {
	set, ok := index[from]
	if !ok {
		set = make(map[int64]struct{})
		index[from] = set
	}
	set[to] = struct{}{}
}

func sortedKeys(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Posts

func (m *MemoryStore) resolveTags(tags []models.Tag) []models.Tag {
	out := make([]models.Tag, len(tags))
	for i, t := range tags {
		id, ok := m.tags[t.Name]
		if !ok {
			id = m.nextID("tags")
			m.tags[t.Name] = id
		}
		out[i] = models.Tag{ID: id, Name: t.Name}
	}
	return out
}

func (m *MemoryStore) withAuthor(p models.Post) models.Post {
	if u, ok := m.users[p.AuthorID]; ok {
		p.Author = &u
	}
	p.Tags = append([]models.Tag(nil), p.Tags...)
	return p
}

func (m *MemoryStore) CreatePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post.ID = m.nextID("posts")
	post.Tags = m.resolveTags(post.Tags)
	m.posts[post.ID] = *post
	return nil
}

func (m *MemoryStore) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, models.ErrNotFound)
	}
	p = m.withAuthor(p)
	return &p, nil
}

func (m *MemoryStore) UpdatePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[post.ID]; !ok {
		return fmt.Errorf("post %d: %w", post.ID, models.ErrNotFound)
	}
	post.Tags = m.resolveTags(post.Tags)
	stored := *post
	stored.Author = nil
	m.posts[post.ID] = stored
	return nil
}

func (m *MemoryStore) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return fmt.Errorf("post %d: %w", id, models.ErrNotFound)
	}
	delete(m.posts, id)
	delete(m.likes, id)
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	return nil
}

func matchesPost(p models.Post, f models.PostFilter, authors map[int64]bool) bool {
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if authors != nil && !authors[p.AuthorID] {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range p.Tags {
			if t.Name == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Content), q) {
			return true
		}
		for _, t := range p.Tags {
			if strings.Contains(t.Name, q) {
				return true
			}
		}
		return false
	}
	return true
}

func (m *MemoryStore) ListPosts(ctx context.Context, filter models.PostFilter, page models.Page) ([]models.Post, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var authors map[int64]bool
	if filter.AuthorIDs != nil {
		authors = make(map[int64]bool, len(filter.AuthorIDs))
		for _, id := range filter.AuthorIDs {
			authors[id] = true
		}
	}

	matched := make([]models.Post, 0)
	for _, p := range m.posts {
		if matchesPost(p, filter, authors) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	start, end := page.Window(len(matched))
	out := make([]models.Post, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, m.withAuthor(p))
	}
	return out, int64(len(matched)), nil
}

// Comments

func (m *MemoryStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[comment.PostID]; !ok {
		return fmt.Errorf("post %d: %w", comment.PostID, models.ErrNotFound)
	}
	comment.ID = m.nextID("comments")
	m.comments[comment.ID] = *comment
	return nil
}

func (m *MemoryStore) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
	}
	return &c, nil
}

func (m *MemoryStore) UpdateComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[comment.ID]; !ok {
		return fmt.Errorf("comment %d: %w", comment.ID, models.ErrNotFound)
	}
	m.comments[comment.ID] = *comment
	return nil
}

func (m *MemoryStore) DeleteComment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
	}
	delete(m.comments, id)
	return nil
}

func (m *MemoryStore) ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Comment, 0)
	for _, c := range m.comments {
		if c.PostID == postID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start, end := page.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

// Likes

func (m *MemoryStore) CreateLike(ctx context.Context, like *models.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.likes[like.PostID][like.UserID]; ok {
		return fmt.Errorf("like %d/%d: %w", like.UserID, like.PostID, models.ErrAlreadyExists)
	}
	addEdge(m.likes, like.PostID, like.UserID)
	return nil
}

func (m *MemoryStore) DeleteLike(ctx context.Context, userID, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.likes[postID][userID]; !ok {
		return fmt.Errorf("like %d/%d: %w", userID, postID, models.ErrNotFound)
	}
	delete(m.likes[postID], userID)
	return nil
}

func (m *MemoryStore) HasLiked(ctx context.Context, userID, postID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.likes[postID][userID]
	return ok, nil
}

func (m *MemoryStore) CountLikes(ctx context.Context, postID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.likes[postID])), nil
}

// Notifications

func (m *MemoryStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.ID = m.nextID("notifications")
	m.notifications[n.ID] = *n
	m.inbox[n.RecipientID] = append(m.inbox[n.RecipientID], n.ID)
	return nil
}

func (m *MemoryStore) GetNotification(ctx context.Context, id int64) (*models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.notifications[id]
	if !ok {
		return nil, fmt.Errorf("notification %d: %w", id, models.ErrNotFound)
	}
	return &n, nil
}

func (m *MemoryStore) ListNotifications(ctx context.Context, recipientID int64, unreadOnly bool, page models.Page) ([]models.Notification, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.inbox[recipientID]
	matched := make([]models.Notification, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		n := m.notifications[ids[i]]
		if unreadOnly && n.Read {
			continue
		}
		matched = append(matched, n)
	}

	start, end := page.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (m *MemoryStore) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, id := range m.inbox[recipientID] {
		if !m.notifications[id].Read {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) MarkRead(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notifications[id]
	if !ok {
		return fmt.Errorf("notification %d: %w", id, models.ErrNotFound)
	}
	n.Read = true
	m.notifications[id] = n
	return nil
}

func (m *MemoryStore) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var changed int64
	for _, id := range m.inbox[recipientID] {
		n := m.notifications[id]
		if !n.Read {
			n.Read = true
			m.notifications[id] = n
			changed++
		}
	}
	return changed, nil
}
