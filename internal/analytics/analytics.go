package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/wichananm65/user-dashboard/internal/user"
)

const (
	// TrendDays is the width of the registration trend.
	TrendDays = 30
	// RecentLimit caps the recent-registrations list.
	RecentLimit = 5
	dayLayout   = "2006-01-02"
)

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type AvatarSplit struct {
	With    int `json:"with"`
	Without int `json:"without"`
}

// Summary is everything the dashboard tab shows, derived from one snapshot
// of the collection.
type Summary struct {
	Total   int         `json:"total"`
	Daily   []DayCount  `json:"daily"`
	Avatars AvatarSplit `json:"avatars"`
	Hours   []HourCount `json:"hours"`
	Recent  []user.User `json:"recent"`
}

// MaxDaily is the tallest bar of the daily trend.
func (s Summary) MaxDaily() int {
	max := 0
	for _, d := range s.Daily {
		if d.Count > max {
			max = d.Count
		}
	}
	return max
}

// MaxHourly is the tallest bar of the hour histogram.
func (s Summary) MaxHourly() int {
	max := 0
	for _, h := range s.Hours {
		if h.Count > max {
			max = h.Count
		}
	}
	return max
}

// Summarize computes the dashboard aggregates. Daily keys are UTC calendar
// days ending at now; a record lands on a day when its createdAt starts with
// that day's key, so stores that already emit UTC ISO timestamps match
// exactly. Hours are bucketed in loc.
func Summarize(records []user.User, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}

	s := Summary{
		Total: len(records),
		Daily: make([]DayCount, TrendDays),
		Hours: make([]HourCount, 24),
	}

	today := now.UTC()
	for i := 0; i < TrendDays; i++ {
		day := today.AddDate(0, 0, -(TrendDays - 1 - i)).Format(dayLayout)
		s.Daily[i] = DayCount{Day: day}
	}
	for h := range s.Hours {
		s.Hours[h].Hour = h
	}

	dated := make([]user.User, 0, len(records))
	for _, r := range records {
		if r.Avatar != "" {
			s.Avatars.With++
		} else {
			s.Avatars.Without++
		}

		for i := range s.Daily {
			if strings.HasPrefix(r.CreatedAt, s.Daily[i].Day) {
				s.Daily[i].Count++
				break
			}
		}

		if t, ok := user.ParseTime(r.CreatedAt); ok {
			s.Hours[t.In(loc).Hour()].Count++
			dated = append(dated, r)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		a, _ := user.ParseTime(dated[i].CreatedAt)
		b, _ := user.ParseTime(dated[j].CreatedAt)
		return a.After(b)
	})
	if len(dated) > RecentLimit {
		dated = dated[:RecentLimit]
	}
	s.Recent = dated
	return s
}
