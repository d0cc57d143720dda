// Package activity groups study events into calendar-day buckets for
// reporting. Everything here is a pure function over a snapshot of events;
// missing data yields empty buckets, never an error.
package activity

import (
	"sort"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// Bucket labels
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"

	labelDateLayout  = "Jan 2"
	shortLabelLayout = "Mon"
)

// Group is one calendar day of study activity.
type Group struct {
	Label      string              `json:"label"`
	ShortLabel string              `json:"short_label"`
	Day        time.Time           `json:"day"` // local midnight that starts the bucket
	DaysAgo    int                 `json:"days_ago"`
	Events     []domain.StudyEvent `json:"-"`
}

// Count returns the number of study events in the bucket.
func (g Group) Count() int {
	return len(g.Events)
}

// NewCount returns the number of first-exposure events in the bucket.
func (g Group) NewCount() int {
	n := 0
	for _, e := range g.Events {
		if e.FirstExposure {
			n++
		}
	}
	return n
}

// ReviewCount returns the number of review events in the bucket.
func (g Group) ReviewCount() int {
	return g.Count() - g.NewCount()
}

// GroupByDay buckets events into dayCount+1 calendar days ending with the day
// containing now, as seen in loc. A nil loc uses now's location. Buckets are
// returned oldest first, today last, and every day is present even when it has
// no events. Events outside the window are ignored.
func GroupByDay(events []domain.StudyEvent, now time.Time, dayCount int, loc *time.Location) []Group {
	if loc == nil {
		loc = now.Location()
	}
	if dayCount < 0 {
		dayCount = 0
	}

	today := startOfDay(now, loc)
	groups := make([]Group, dayCount+1)
	index := make(map[dayKey]int, dayCount+1)

	// Computed newest-first, stored oldest-first.
	for back := 0; back <= dayCount; back++ {
		day := today.AddDate(0, 0, -back)
		pos := dayCount - back
		groups[pos] = Group{
			Label:      label(day, back),
			ShortLabel: day.Format(shortLabelLayout),
			Day:        day,
			DaysAgo:    back,
		}
		index[keyOf(day)] = pos
	}

	for _, e := range events {
		pos, ok := index[keyOf(e.StudiedAt.In(loc))]
		if !ok {
			continue
		}
		groups[pos].Events = append(groups[pos].Events, e)
	}

	for i := range groups {
		evs := groups[i].Events
		sort.SliceStable(evs, func(a, b int) bool {
			return evs[a].StudiedAt.Before(evs[b].StudiedAt)
		})
	}

	return groups
}

// RollingAverage returns the mean daily count over every bucket except the
// last one (today), truncated toward zero. It is 0 when there are no prior
// days.
func RollingAverage(groups []Group) int {
	if len(groups) < 2 {
		return 0
	}
	prior := groups[:len(groups)-1]
	sum := 0
	for _, g := range prior {
		sum += g.Count()
	}
	return sum / len(prior)
}

// Summary holds totals over a set of buckets.
type Summary struct {
	Days           int `json:"days"`
	Total          int `json:"total"`
	New            int `json:"new"`
	Reviews        int `json:"reviews"`
	Today          int `json:"today"`
	RollingAverage int `json:"rolling_average"`
}

// Summarize totals the buckets produced by GroupByDay.
func Summarize(groups []Group) Summary {
	s := Summary{Days: len(groups), RollingAverage: RollingAverage(groups)}
	for _, g := range groups {
		s.Total += g.Count()
		s.New += g.NewCount()
	}
	s.Reviews = s.Total - s.New
	if len(groups) > 0 {
		s.Today = groups[len(groups)-1].Count()
	}
	return s
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func label(day time.Time, daysAgo int) string {
	switch daysAgo {
	case 0:
		return LabelToday
	case 1:
		return LabelYesterday
	default:
		return day.Format(labelDateLayout)
	}
}
