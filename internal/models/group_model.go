package models

import "time"

// Group represents a small group document in the "groups" collection.
// LeaderName is a denormalized snapshot taken when the leader was assigned,
// not a live join. MemberCount is a denormalized counter maintained by the
// membership service; it must equal the number of users whose groupId
// points at this group.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LeaderID    string    `json:"leaderId"`
	LeaderName  string    `json:"leaderName"`
	MemberCount int64     `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
