package api

// ErrorResponse is the standardized error payload for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SessionResponse is the positive outcome of the console access gate.
type SessionResponse struct {
	Authorized bool   `json:"authorized"`
	Role       string `json:"role"`
	ChurchID   string `json:"churchId,omitempty"`
}

// CreateGroupResponse returns the id of a newly created group.
type CreateGroupResponse struct {
	ID string `json:"id"`
}
