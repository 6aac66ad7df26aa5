package stats

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/liftlog/liftlog/internal/workouts"
)

const day = 24 * time.Hour

// uniqueDays parses and deduplicates a list of YYYY-MM-DD dates.
// Unparseable dates are logged and skipped, historical data can be messy.
func uniqueDays(dates []string) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		parsed, err := workouts.ParseDay(d)
		if err != nil {
			log.Warnf("streak calc, skipping invalid date [%s]: %s", d, err)
			continue
		}
		days = append(days, parsed)
	}
	return days
}

// CurrentStreak counts consecutive calendar days with a logged entry,
// walking backward from today. The streak may start at today or yesterday;
// an older most-recent entry means the streak is broken and the count is 0.
// Future-dated entries are skipped, not counted.
func CurrentStreak(dates []string, today time.Time) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	todayDay := workouts.LocalDay(today)

	streak := 0
	var prev time.Time
	for _, d := range days {
		if d.After(todayDay) {
			continue
		}
		if streak == 0 {
			if todayDay.Sub(d) > day {
				return 0
			}
			streak = 1
			prev = d
			continue
		}
		if prev.Sub(d) != day {
			break
		}
		streak++
		prev = d
	}

	return streak
}

// LongestStreak returns the longest run of consecutive calendar days ever
// seen in the given dates. At least one valid date yields a streak of 1.
func LongestStreak(dates []string) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == day {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}
