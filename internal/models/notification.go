package models

import (
	"time"
)

// Notification tells Recipient that Actor did Verb to the target
type Notification struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	RecipientID int64     `gorm:"not null;index:idx_notifications_recipient;column:recipient_id" json:"recipient_id"`
	ActorID     int64     `gorm:"not null;column:actor_id" json:"actor_id"`
	Verb        string    `gorm:"type:varchar(255);not null;column:verb" json:"verb"`
	TargetType  string    `gorm:"type:varchar(50);not null;column:target_type" json:"target_type"`
	TargetID    int64     `gorm:"not null;column:target_id" json:"target_id"`
	Read        bool      `gorm:"not null;default:false;index:idx_notifications_recipient;column:read" json:"read"`
	CreatedAt   time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Relationships
	Recipient *User `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Actor     *User `gorm:"foreignKey:ActorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// Notification verbs
const (
	VerbLikedPost     = "liked your post"
	VerbCommentedPost = "commented on your post"
)

// Notification target types
const (
	TargetTypePost = "post"
)

// NotificationTypeName returns a short name for a verb, used in logs and metrics
func NotificationTypeName(verb string) string {
	names := map[string]string{
		VerbLikedPost:     "like",
		VerbCommentedPost: "comment",
	}
	if name, ok := names[verb]; ok {
		return name
	}
	return "unknown"
}
