package history

import (
	"sort"
	"time"
)

// Bucket labels, in display order. Months older than thirty days get their
// own "2006-01" label between LabelLast30 and LabelOlder.
const (
	LabelToday     = "today"
	LabelYesterday = "yesterday"
	LabelLast7     = "previous 7 days"
	LabelLast30    = "previous 30 days"
	LabelOlder     = "older"
)

// Group is one labeled bucket of sessions.
type Group struct {
	Label    string
	Sessions []*Session
}

// GroupByTime buckets sessions by the calendar day of UpdatedAt relative to
// now, both taken in now's location. Sessions keep their input order within a
// bucket; empty buckets are omitted.
func GroupByTime(sessions []*Session, now time.Time) []Group {
	loc := now.Location()
	today := civilDay(now)

	buckets := make(map[string][]*Session)
	var months []string
	for _, s := range sessions {
		if s == nil {
			continue
		}
		label := LabelOlder
		if !s.UpdatedAt.IsZero() {
			t := s.UpdatedAt.In(loc)
			switch diff := daysBetween(civilDay(t), today); {
			case diff <= 0:
				label = LabelToday
			case diff == 1:
				label = LabelYesterday
			case diff <= 7:
				label = LabelLast7
			case diff <= 30:
				label = LabelLast30
			default:
				label = t.Format("2006-01")
				if _, seen := buckets[label]; !seen {
					months = append(months, label)
				}
			}
		}
		buckets[label] = append(buckets[label], s)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	order := []string{LabelToday, LabelYesterday, LabelLast7, LabelLast30}
	order = append(order, months...)
	order = append(order, LabelOlder)

	groups := make([]Group, 0, len(buckets))
	for _, label := range order {
		if ss, ok := buckets[label]; ok {
			groups = append(groups, Group{Label: label, Sessions: ss})
		}
	}
	return groups
}

// civilDay truncates t to midnight in its own location, expressed in UTC so
// day arithmetic is immune to DST shifts.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
