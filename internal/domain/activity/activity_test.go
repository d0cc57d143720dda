package activity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(at time.Time, first bool) domain.StudyEvent {
	return domain.StudyEvent{
		ID:            uuid.New(),
		WordID:        "H" + at.Format("150405"),
		NewIndex:      1,
		Quality:       domain.AnswerGood,
		StudiedAt:     at,
		FirstExposure: first,
	}
}

func TestGroupByDayAlwaysReturnsAllBuckets(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)

	groups := GroupByDay(nil, now, 7, time.UTC)
	require.Len(t, groups, 8)
	for _, g := range groups {
		assert.Equal(t, 0, g.Count())
	}

	groups = GroupByDay([]domain.StudyEvent{}, now, 0, time.UTC)
	require.Len(t, groups, 1)
	assert.Equal(t, LabelToday, groups[0].Label)

	groups = GroupByDay(nil, now, -3, time.UTC)
	assert.Len(t, groups, 1)
}

func TestGroupByDayLabelsAndOrder(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC) // a Saturday

	groups := GroupByDay(nil, now, 7, time.UTC)
	require.Len(t, groups, 8)

	assert.Equal(t, "Feb 3", groups[0].Label)
	assert.Equal(t, "Sat", groups[0].ShortLabel)
	assert.Equal(t, 7, groups[0].DaysAgo)
	assert.Equal(t, "Feb 8", groups[5].Label)
	assert.Equal(t, LabelYesterday, groups[6].Label)
	assert.Equal(t, "Fri", groups[6].ShortLabel)
	assert.Equal(t, LabelToday, groups[7].Label)
	assert.Equal(t, 0, groups[7].DaysAgo)

	for i := 1; i < len(groups); i++ {
		assert.True(t, groups[i-1].Day.Before(groups[i].Day), "buckets must be oldest first")
	}
}

func TestGroupByDayAssignsEventsToCalendarDays(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)

	events := []domain.StudyEvent{
		event(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), true),   // today, at midnight
		event(time.Date(2024, 2, 10, 14, 59, 0, 0, time.UTC), false), // today
		event(time.Date(2024, 2, 9, 23, 59, 59, 0, time.UTC), false), // yesterday
		event(time.Date(2024, 2, 3, 1, 0, 0, 0, time.UTC), true),     // oldest bucket
		event(time.Date(2024, 2, 2, 23, 0, 0, 0, time.UTC), false),   // outside window
		event(time.Date(2024, 2, 11, 1, 0, 0, 0, time.UTC), false),   // tomorrow, ignored
	}

	groups := GroupByDay(events, now, 7, time.UTC)
	require.Len(t, groups, 8)
	assert.Equal(t, 1, groups[0].Count())
	assert.Equal(t, 1, groups[6].Count())
	assert.Equal(t, 2, groups[7].Count())
	assert.Equal(t, 1, groups[7].NewCount())
	assert.Equal(t, 1, groups[7].ReviewCount())
	assert.True(t, groups[7].Events[0].StudiedAt.Before(groups[7].Events[1].StudiedAt))
}

func TestGroupByDayUsesGivenTimezone(t *testing.T) {
	t.Parallel()
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC) // 21:00 in Tokyo

	// 16:00 UTC on Feb 10 is 01:00 on Feb 11 in Tokyo: outside the window there,
	// inside "Today" in UTC.
	late := event(time.Date(2024, 2, 10, 16, 0, 0, 0, time.UTC), false)
	// 20:00 UTC on Feb 9 is 05:00 on Feb 10 in Tokyo: today there, yesterday in UTC.
	early := event(time.Date(2024, 2, 9, 20, 0, 0, 0, time.UTC), false)

	inTokyo := GroupByDay([]domain.StudyEvent{late, early}, now, 1, tokyo)
	assert.Equal(t, 1, inTokyo[1].Count())
	assert.Equal(t, early.ID, inTokyo[1].Events[0].ID)
	assert.Equal(t, 0, inTokyo[0].Count())

	inUTC := GroupByDay([]domain.StudyEvent{late, early}, now, 1, time.UTC)
	assert.Equal(t, late.ID, inUTC[1].Events[0].ID)
	assert.Equal(t, early.ID, inUTC[0].Events[0].ID)
}

func TestGroupByDayNilLocationUsesNow(t *testing.T) {
	t.Parallel()
	zone := time.FixedZone("X", -5*60*60)
	now := time.Date(2024, 2, 10, 1, 0, 0, 0, zone)

	groups := GroupByDay(nil, now, 0, nil)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, zone), groups[0].Day)
}

func TestRollingAverageExcludesToday(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)
	counts := []int{3, 5, 2, 0, 1, 4, 6, 8} // oldest first, today last

	var events []domain.StudyEvent
	for i, c := range counts {
		day := now.AddDate(0, 0, -(len(counts) - 1 - i))
		for j := 0; j < c; j++ {
			events = append(events, event(day.Add(-time.Duration(j)*time.Minute), false))
		}
	}

	groups := GroupByDay(events, now, 7, time.UTC)
	for i, c := range counts {
		require.Equal(t, c, groups[i].Count(), "bucket %d", i)
	}
	assert.Equal(t, 3, RollingAverage(groups))

	summary := Summarize(groups)
	assert.Equal(t, 8, summary.Days)
	assert.Equal(t, 29, summary.Total)
	assert.Equal(t, 29, summary.Reviews)
	assert.Equal(t, 8, summary.Today)
	assert.Equal(t, 3, summary.RollingAverage)
}

func TestRollingAverageWithoutPriorDays(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, RollingAverage(nil))
	assert.Equal(t, 0, RollingAverage([]Group{{Events: make([]domain.StudyEvent, 4)}}))
}
