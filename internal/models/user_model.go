package models

import "time"

// Role values stored on user documents. "super-admin" is reserved for
// platform operators and is never assignable through the console API.
const (
	RoleMember     = "member"
	RoleLeader     = "leader"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// AssignableRoles are the roles the console may write onto a user.
var AssignableRoles = []string{RoleMember, RoleLeader, RoleAdmin}

// Principal is an authenticated identity as resolved by Firebase Auth,
// before any role check. It is populated by the auth middleware and passed
// explicitly into service calls; nothing below the middleware reads
// ambient session state.
type Principal struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// User represents a member profile in the "users" collection.
// The document ID is the Firebase Auth UID. Stored documents may carry
// legacy field aliases (group_id, church_id, name); repositories normalize
// those on read, so this struct is always canonical.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	GroupID     string    `json:"groupId,omitempty"`
	GroupName   string    `json:"groupName,omitempty"`
	ChurchID    string    `json:"churchId,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LeaderDisplayName returns the name a group should snapshot for this user
// when they are promoted to leader.
func (u *User) LeaderDisplayName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return "Unknown Leader"
}
