package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/models"
)

func newStatsService(userRepo *stubUserRepo, groupRepo *stubGroupRepo, goalRepo *stubGoalRepo, now time.Time) StatsService {
	svc := NewStatsService(userRepo, groupRepo, goalRepo, zap.NewNop()).(*statsService)
	if !now.IsZero() {
		svc.now = func() time.Time { return now }
	}
	return svc
}

func TestWeeklyTemplate(t *testing.T) {
	tests := []struct {
		name       string
		today      time.Time
		wantMonday string
	}{
		{
			name:       "friday anchors to the preceding monday",
			today:      time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC),
			wantMonday: "2024-03-04",
		},
		{
			name:       "monday anchors to itself",
			today:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantMonday: "2024-03-04",
		},
		{
			name:       "sunday belongs to the week that started six days earlier",
			today:      time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC),
			wantMonday: "2024-03-04",
		},
		{
			name:       "month boundary",
			today:      time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
			wantMonday: "2024-04-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := weeklyTemplate(tt.today)
			require.Len(t, week, 7)
			assert.Equal(t, tt.wantMonday, week[0].Date)

			monday, err := time.Parse("2006-01-02", week[0].Date)
			require.NoError(t, err)
			for i, day := range week {
				assert.Equal(t, weekdayLabels[i], day.Name)
				assert.Equal(t, monday.AddDate(0, 0, i).Format("2006-01-02"), day.Date)
				assert.Zero(t, day.Total)
			}
		})
	}
}

func TestWeeklyReadingStatsSumsAcrossGroups(t *testing.T) {
	goalRepo := &stubGoalRepo{
		list: func(context.Context) ([]*models.GroupGoal, error) {
			return []*models.GroupGoal{
				{ID: "goal-1", DailyStats: map[string]int64{"2024-03-04": 3, "2024-03-06": 2}},
				{ID: "goal-2", DailyStats: map[string]int64{"2024-03-04": 1, "2024-03-10": 5}},
				{ID: "goal-3", DailyStats: map[string]int64{"2024-02-26": 9}}, // previous week, ignored
			}, nil
		},
	}
	svc := newStatsService(&stubUserRepo{}, &stubGroupRepo{}, goalRepo,
		time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)) // Friday

	week := svc.WeeklyReadingStats(context.Background())
	require.Len(t, week, 7)
	assert.Equal(t, "2024-03-04", week[0].Date)
	assert.Equal(t, []int64{4, 0, 2, 0, 0, 0, 5}, weekTotals(week))
}

func TestWeeklyReadingStatsSingleGroupExample(t *testing.T) {
	goalRepo := &stubGoalRepo{
		list: func(context.Context) ([]*models.GroupGoal, error) {
			return []*models.GroupGoal{
				{ID: "goal-1", DailyStats: map[string]int64{"2024-03-04": 3, "2024-03-06": 2}},
			}, nil
		},
	}
	svc := newStatsService(&stubUserRepo{}, &stubGroupRepo{}, goalRepo,
		time.Date(2024, 3, 8, 9, 30, 0, 0, time.UTC))

	week := svc.WeeklyReadingStats(context.Background())
	assert.Equal(t, []int64{3, 0, 2, 0, 0, 0, 0}, weekTotals(week))
}

func TestWeeklyReadingStatsDegradesToZeros(t *testing.T) {
	goalRepo := &stubGoalRepo{
		list: func(context.Context) ([]*models.GroupGoal, error) {
			return nil, errors.New("store unavailable")
		},
	}
	svc := newStatsService(&stubUserRepo{}, &stubGroupRepo{}, goalRepo,
		time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC))

	week := svc.WeeklyReadingStats(context.Background())
	require.Len(t, week, 7)
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0, 0}, weekTotals(week))
}

func weekTotals(week []WeeklyReadingDay) []int64 {
	totals := make([]int64, len(week))
	for i, day := range week {
		totals[i] = day.Total
	}
	return totals
}

func TestDashboardStats(t *testing.T) {
	userRepo := &stubUserRepo{count: func(context.Context) (int64, error) { return 42, nil }}
	groupRepo := &stubGroupRepo{count: func(context.Context) (int64, error) { return 7, nil }}
	goalRepo := &stubGoalRepo{sumTotalCleared: func(context.Context) (int64, error) { return 1234, nil }}
	svc := newStatsService(userRepo, groupRepo, goalRepo, time.Time{})

	stats := svc.DashboardStats(context.Background())
	assert.Equal(t, int64(42), stats.MemberCount)
	assert.Equal(t, int64(7), stats.GroupCount)
	assert.Equal(t, int64(1234), stats.ChaptersRead)
	assert.Zero(t, stats.CompletionRate)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	userRepo := &stubUserRepo{count: func(context.Context) (int64, error) { return 0, nil }}
	groupRepo := &stubGroupRepo{count: func(context.Context) (int64, error) { return 0, nil }}
	goalRepo := &stubGoalRepo{sumTotalCleared: func(context.Context) (int64, error) { return 0, nil }}
	svc := newStatsService(userRepo, groupRepo, goalRepo, time.Time{})

	assert.Equal(t, &DashboardStats{}, svc.DashboardStats(context.Background()))
}

func TestDashboardStatsDegradesToZerosOnFailure(t *testing.T) {
	userRepo := &stubUserRepo{count: func(context.Context) (int64, error) { return 42, nil }}
	groupRepo := &stubGroupRepo{count: func(context.Context) (int64, error) { return 0, errors.New("store unavailable") }}
	goalRepo := &stubGoalRepo{sumTotalCleared: func(context.Context) (int64, error) { return 1234, nil }}
	svc := newStatsService(userRepo, groupRepo, goalRepo, time.Time{})

	assert.Equal(t, &DashboardStats{}, svc.DashboardStats(context.Background()))
}

func TestTopGroupsByMembershipBreaksTiesByID(t *testing.T) {
	groupRepo := &stubGroupRepo{
		list: func(context.Context) ([]*models.Group, error) {
			return []*models.Group{
				{ID: "g-e", Name: "Seedlings", MemberCount: 1},
				{ID: "g-c", Name: "Sojourners", MemberCount: 7},
				{ID: "g-a", Name: "Harvest", MemberCount: 10},
				{ID: "g-b", Name: "Vine", MemberCount: 7},
				{ID: "g-d", Name: "Anchor", MemberCount: 3},
			}, nil
		},
	}
	svc := newStatsService(&stubUserRepo{}, groupRepo, &stubGoalRepo{}, time.Time{})

	entries := svc.TopGroupsByMembership(context.Background(), 3)
	require.Len(t, entries, 3)
	assert.Equal(t, GroupChartEntry{Name: "Harvest", MemberCount: 10}, entries[0])
	// Tied at 7: group id ascending, so g-b before g-c.
	assert.Equal(t, GroupChartEntry{Name: "Vine", MemberCount: 7}, entries[1])
	assert.Equal(t, GroupChartEntry{Name: "Sojourners", MemberCount: 7}, entries[2])
}

func TestTopGroupsByMembershipDefaultLimit(t *testing.T) {
	groupRepo := &stubGroupRepo{
		list: func(context.Context) ([]*models.Group, error) {
			groups := make([]*models.Group, 8)
			for i := range groups {
				groups[i] = &models.Group{ID: string(rune('a' + i)), MemberCount: int64(i)}
			}
			return groups, nil
		},
	}
	svc := newStatsService(&stubUserRepo{}, groupRepo, &stubGoalRepo{}, time.Time{})

	assert.Len(t, svc.TopGroupsByMembership(context.Background(), 0), defaultTopGroupsLimit)
}

func TestTopGroupsByMembershipDegradesToEmpty(t *testing.T) {
	groupRepo := &stubGroupRepo{
		list: func(context.Context) ([]*models.Group, error) {
			return nil, errors.New("store unavailable")
		},
	}
	svc := newStatsService(&stubUserRepo{}, groupRepo, &stubGoalRepo{}, time.Time{})

	assert.Empty(t, svc.TopGroupsByMembership(context.Background(), 5))
}
