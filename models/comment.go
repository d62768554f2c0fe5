package models

import "time"

// Comment carries a snapshot of the author's name and avatar taken at
// creation time. The snapshot is never refreshed.
type Comment struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"userId"`
	UserName   string    `bson:"user_name" json:"userName"`
	UserAvatar string    `bson:"user_avatar,omitempty" json:"userAvatar,omitempty"`
	Content    string    `bson:"content" json:"content"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
