package core

import (
	"context"

	"flockreads-backend-go/internal/models"
)

// AccessService decides whether a freshly authenticated principal may use
// the admin console at all. It runs once per sign-in; every denial is
// terminal for the session and the caller must invalidate the credential
// before surfacing the error.
type AccessService interface {
	Authorize(ctx context.Context, principal models.Principal) (*AccessDecision, error)
}

// MembershipService owns the user-to-group relationship and the
// denormalized per-group member count.
type MembershipService interface {
	CreateGroup(ctx context.Context, actor models.Principal, name, leaderID string) (string, error)
	AddMember(ctx context.Context, actor models.Principal, groupID, email string) error
	UpdateMemberRole(ctx context.Context, actor models.Principal, userID, role string) error
	ListGroups(ctx context.Context) ([]*models.Group, error)
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupMembers(ctx context.Context, groupID string) ([]*models.User, error)
}

// StatsService computes the dashboard aggregates. All of its reads degrade
// to zero or empty results on store failure; a broken report must never
// take the console down with it.
type StatsService interface {
	DashboardStats(ctx context.Context) *DashboardStats
	WeeklyReadingStats(ctx context.Context) []WeeklyReadingDay
	TopGroupsByMembership(ctx context.Context, limit int) []GroupChartEntry
}

// UserService serves the member directory.
type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// GoalService serves the reading-goal list.
type GoalService interface {
	ListGoals(ctx context.Context) ([]*models.GroupGoal, error)
}

// AccessDecision is the positive outcome of an authorization check.
type AccessDecision struct {
	Role     string `json:"role"`
	ChurchID string `json:"churchId,omitempty"`
}

// DashboardStats are the headline numbers on the console dashboard.
// CompletionRate is a placeholder: its denominator (total possible
// chapters across the church) is not tracked anywhere, so it is reported
// as zero rather than computed from an invented formula.
type DashboardStats struct {
	MemberCount    int64 `json:"memberCount"`
	GroupCount     int64 `json:"groupCount"`
	ChaptersRead   int64 `json:"chaptersRead"`
	CompletionRate int   `json:"completionRate"`
}

// WeeklyReadingDay is one weekday slot of the reading chart, Monday first.
type WeeklyReadingDay struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// GroupChartEntry is one bar of the group participation chart.
type GroupChartEntry struct {
	Name        string `json:"name"`
	MemberCount int64  `json:"memberCount"`
}
