package models

// CreateGroupRequest is the payload for POST /groups.
// LeaderID is optional; when empty the authenticated caller becomes the
// leader, which is how the console's create-group dialog behaves.
type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	LeaderID string `json:"leaderId"`
}

// AddMemberRequest is the payload for POST /groups/:groupId/members.
// The user must already have a profile; they are looked up by exact email.
type AddMemberRequest struct {
	Email string `json:"email" binding:"required"`
}

// UpdateRoleRequest is the payload for PUT /users/:userId/role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
