package models

// GroupGoal represents a reading goal document in the "group_goals"
// collection, one per group. DailyStats is a sparse map from "2006-01-02"
// date keys to the number of chapters cleared that day; absent dates mean
// zero. TotalClearedCount is the running total across all days.
type GroupGoal struct {
	ID                     string           `json:"id"`
	GroupID                string           `json:"groupId"`
	GroupName              string           `json:"groupName"`
	Title                  string           `json:"title"`
	Description            string           `json:"description,omitempty"`
	Status                 string           `json:"status"`
	StartDate              string           `json:"startDate,omitempty"`
	EndDate                string           `json:"endDate,omitempty"`
	TargetRange            []string         `json:"targetRange,omitempty"`
	ActiveParticipantCount int64            `json:"participantCount"`
	TotalClearedCount      int64            `json:"totalClearedCount"`
	TotalChapters          int64            `json:"totalChapters"`
	Progress               int              `json:"progress"`
	DailyStats             map[string]int64 `json:"dailyStats,omitempty"`
}
