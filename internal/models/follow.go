package models

import (
	"time"
)

// Follow is a directed edge: Follower follows Followee.
// The reverse lookup uses idx_follows_followee instead of scanning the table.
type Follow struct {
	FollowerID int64     `gorm:"primaryKey;column:follower_id" json:"follower_id"`
	FolloweeID int64     `gorm:"primaryKey;index:idx_follows_followee;column:followee_id" json:"followee_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Relationships
	Follower *User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Followee *User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}

// FollowCounts holds the size of both sides of a user's graph
type FollowCounts struct {
	Followers int64 `json:"followers_count"`
	Following int64 `json:"following_count"`
}
