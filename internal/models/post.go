package models

import (
	"time"
)

// Post is a blog post owned by its author
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AuthorID  int64     `gorm:"not null;index;column:author_id" json:"author_id"`
	Title     string    `gorm:"type:varchar(200);not null;column:title" json:"title"`
	Content   string    `gorm:"type:text;not null;column:content" json:"content"`
	CreatedAt time.Time `gorm:"not null;index;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`

	// Relationships
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags   []Tag `gorm:"many2many:post_tags" json:"tags"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// Tag labels posts; names are unique
type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex;column:name" json:"name"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// TagNames returns the names of the post's tags
func (p *Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// PostFilter narrows post listings
type PostFilter struct {
	Search   string // title, content or tag name
	Tag      string
	AuthorID int64
	// AuthorIDs restricts to posts by any of these authors (feed)
	AuthorIDs []int64
}

// Comment is a reply to a post
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PostID    int64     `gorm:"not null;index;column:post_id" json:"post_id"`
	AuthorID  int64     `gorm:"not null;column:author_id" json:"author_id"`
	Content   string    `gorm:"type:text;not null;column:content" json:"content"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`

	Post   *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// Like records that a user liked a post; at most one per pair
type Like struct {
	UserID    int64     `gorm:"primaryKey;column:user_id" json:"user_id"`
	PostID    int64     `gorm:"primaryKey;index;column:post_id" json:"post_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
