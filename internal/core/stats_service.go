package core

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"flockreads-backend-go/internal/db"
)

// defaultTopGroupsLimit bounds the group participation chart when the
// caller does not specify a limit.
const defaultTopGroupsLimit = 5

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// statsService implements the StatsService interface. Every method is
// read-only and degrades to a zero or empty result on store failure: the
// error is logged and the dashboard keeps rendering.
type statsService struct {
	userRepo  db.UserRepository
	groupRepo db.GroupRepository
	goalRepo  db.GoalRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(userRepo db.UserRepository, groupRepo db.GroupRepository, goalRepo db.GoalRepository, logger *zap.Logger) StatsService {
	return &statsService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
		goalRepo:  goalRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// DashboardStats returns the headline counts using store-side aggregations.
// Any failed read collapses the whole result to zeros.
func (s *statsService) DashboardStats(ctx context.Context) *DashboardStats {
	memberCount, err := s.userRepo.Count(ctx)
	if err != nil {
		s.logger.Error("dashboard stats degraded to zeros", zap.Error(err))
		return &DashboardStats{}
	}
	groupCount, err := s.groupRepo.Count(ctx)
	if err != nil {
		s.logger.Error("dashboard stats degraded to zeros", zap.Error(err))
		return &DashboardStats{}
	}
	chaptersRead, err := s.goalRepo.SumTotalCleared(ctx)
	if err != nil {
		s.logger.Error("dashboard stats degraded to zeros", zap.Error(err))
		return &DashboardStats{}
	}

	return &DashboardStats{
		MemberCount:  memberCount,
		GroupCount:   groupCount,
		ChaptersRead: chaptersRead,
		// CompletionRate stays 0: no denominator is tracked anywhere.
	}
}

// WeeklyReadingStats returns the current calendar week's reading totals,
// Monday through Sunday, summed across every group's daily stats. The week
// is anchored in the evaluator's local time zone. A failed read returns
// the labeled week with zero totals.
func (s *statsService) WeeklyReadingStats(ctx context.Context) []WeeklyReadingDay {
	week := weeklyTemplate(s.now())

	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		s.logger.Error("weekly reading stats degraded to zeros", zap.Error(err))
		return week
	}

	for _, goal := range goals {
		for i := range week {
			week[i].Total += goal.DailyStats[week[i].Date]
		}
	}
	return week
}

// TopGroupsByMembership returns up to limit groups ordered by member count
// descending. Ties are broken by group ID ascending so the chart is stable
// across refreshes. A failed read returns an empty chart.
func (s *statsService) TopGroupsByMembership(ctx context.Context, limit int) []GroupChartEntry {
	if limit <= 0 {
		limit = defaultTopGroupsLimit
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		s.logger.Error("top groups chart degraded to empty", zap.Error(err))
		return []GroupChartEntry{}
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].MemberCount != groups[j].MemberCount {
			return groups[i].MemberCount > groups[j].MemberCount
		}
		return groups[i].ID < groups[j].ID
	})
	if len(groups) > limit {
		groups = groups[:limit]
	}

	entries := make([]GroupChartEntry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, GroupChartEntry{Name: g.Name, MemberCount: g.MemberCount})
	}
	return entries
}

// weeklyTemplate builds the 7 weekday slots for the calendar week
// containing today. Weeks start on Monday and end on Sunday: when today is
// Sunday, Monday was 6 days ago, otherwise weekday-1 days ago.
func weeklyTemplate(today time.Time) []WeeklyReadingDay {
	offset := int(today.Weekday()) - 1
	if today.Weekday() == time.Sunday {
		offset = 6
	}
	monday := today.AddDate(0, 0, -offset)

	week := make([]WeeklyReadingDay, 7)
	for i := range week {
		week[i] = WeeklyReadingDay{
			Name: weekdayLabels[i],
			Date: monday.AddDate(0, 0, i).Format("2006-01-02"),
		}
	}
	return week
}
