package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows FollowedID.
// The composite primary key keeps the edge unique per ordered pair, so
// concurrent duplicate follow attempts are serialized by the database.
type Follow struct {
	FollowerID string    `json:"follower_id" gorm:"primaryKey;type:varchar(36)"`
	FollowedID string    `json:"followed_id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt  time.Time `json:"created_at"`
}
