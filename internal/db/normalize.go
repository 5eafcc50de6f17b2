package db

import (
	"time"

	"flockreads-backend-go/internal/models"
)

// The users and groups collections have accumulated two field-naming
// conventions over time (camelCase and snake_case). All alias resolution
// lives here, at the adapter boundary; services and handlers only ever see
// the canonical structs from internal/models.

func userFromDoc(id string, data map[string]interface{}) *models.User {
	return &models.User{
		ID:          id,
		DisplayName: firstString(data, "displayName", "name"),
		Email:       firstString(data, "email"),
		Role:        stringOr(data, models.RoleMember, "role"),
		GroupID:     firstString(data, "groupId", "group_id"),
		ChurchID:    firstString(data, "churchId", "church_id"),
		PhotoURL:    firstString(data, "photoURL", "avatarUrl"),
		CreatedAt:   timeField(data, "createdAt"),
		UpdatedAt:   timeField(data, "updatedAt"),
	}
}

func groupFromDoc(id string, data map[string]interface{}) *models.Group {
	return &models.Group{
		ID:          id,
		Name:        stringOr(data, "Unnamed Group", "name", "groupName", "group_name"),
		LeaderID:    firstString(data, "leaderId", "leader_id"),
		LeaderName:  stringOr(data, "Unknown Leader", "leaderName", "leader_name"),
		MemberCount: firstInt(data, "memberCount", "member_count"),
		CreatedAt:   timeField(data, "createdAt"),
		UpdatedAt:   timeField(data, "updatedAt"),
	}
}

func goalFromDoc(id string, data map[string]interface{}) *models.GroupGoal {
	totalChapters := firstInt(data, "total_chapters")
	if totalChapters == 0 {
		totalChapters = defaultTotalChapters
	}
	return &models.GroupGoal{
		ID:                     id,
		GroupID:                firstString(data, "group_id", "groupId"),
		Title:                  stringOr(data, "Untitled Goal", "title"),
		Description:            firstString(data, "description"),
		Status:                 stringOr(data, "ACTIVE", "status"),
		StartDate:              dateField(data, "start_date"),
		EndDate:                dateField(data, "end_date"),
		TargetRange:            stringSlice(data, "target_range"),
		ActiveParticipantCount: firstInt(data, "active_participant_count"),
		TotalClearedCount:      firstInt(data, "total_cleared_count"),
		TotalChapters:          totalChapters,
		DailyStats:             intMap(data, "daily_stats"),
	}
}

// defaultTotalChapters is the goal denominator assumed when a document does
// not carry total_chapters (a one-year Bible reading plan).
const defaultTotalChapters = 260

func firstString(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func stringOr(data map[string]interface{}, fallback string, keys ...string) string {
	if s := firstString(data, keys...); s != "" {
		return s
	}
	return fallback
}

func firstInt(data map[string]interface{}, keys ...string) int64 {
	for _, key := range keys {
		switch v := data[key].(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case float64:
			return int64(v)
		}
	}
	return 0
}

func timeField(data map[string]interface{}, key string) time.Time {
	if t, ok := data[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}

// dateField accepts either a Firestore timestamp or a plain date string;
// older goal documents stored start/end dates both ways.
func dateField(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case string:
		return v
	}
	return ""
}

func stringSlice(data map[string]interface{}, key string) []string {
	raw, ok := data[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intMap(data map[string]interface{}, key string) map[string]int64 {
	raw, ok := data[key].(map[string]interface{})
	if !ok {
		return map[string]int64{}
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case int64:
			out[k] = n
		case int:
			out[k] = int64(n)
		case float64:
			out[k] = int64(n)
		}
	}
	return out
}
