package stats

import (
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/liftlog/liftlog/internal/workouts"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query param value to a known period, defaulting to all.
func ParsePeriod(value string) Period {
	switch Period(value) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return Period(value)
	default:
		return PeriodAll
	}
}

// TrendBucket is one point of a volume/distance trend: all workouts of a
// period bucket rolled up together.
type TrendBucket struct {
	Date            string  `json:"date"`
	Volume          float64 `json:"volume"`
	Distance        float64 `json:"distance"`
	DurationSeconds int     `json:"durationSeconds"`
	Workouts        int     `json:"workouts"`
}

// FilterByPeriod returns the workouts with a date on or after the period
// cutoff: now minus 7 days for week, minus 1 calendar month for month,
// minus 1 calendar year for year. Unparseable dates are logged and skipped.
func FilterByPeriod(workoutsList []workouts.Workout, period Period, now time.Time) []workouts.Workout {
	if period == PeriodAll {
		return workoutsList
	}

	var cutoff time.Time
	switch period {
	case PeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case PeriodMonth:
		cutoff = now.AddDate(0, -1, 0)
	case PeriodYear:
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return workoutsList
	}
	cutoffDay := workouts.LocalDay(cutoff)

	filtered := make([]workouts.Workout, 0, len(workoutsList))
	for _, w := range workoutsList {
		workoutDay, err := w.Day()
		if err != nil {
			log.Warnf("period filter, skipping workout %d with invalid date [%s]: %s", w.ID, w.Date, err)
			continue
		}
		if workoutDay.Before(cutoffDay) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// Trend buckets the given workouts by period key and rolls up volume,
// cardio distance and duration per bucket, sorted ascending by date.
func Trend(workoutsList []workouts.Workout, period Period) []TrendBucket {
	buckets := make(map[string]*TrendBucket)
	for i := range workoutsList {
		w := &workoutsList[i]
		key, err := bucketKey(w.Date, period)
		if err != nil {
			log.Warnf("trend calc, skipping workout %d with invalid date [%s]: %s", w.ID, w.Date, err)
			continue
		}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &TrendBucket{Date: key}
			buckets[key] = bucket
		}
		bucket.Volume += w.TotalVolume()
		bucket.Distance += w.TotalCardioDistance()
		bucket.DurationSeconds += w.TotalCardioDuration()
		bucket.Workouts++
	}

	trend := make([]TrendBucket, 0, len(buckets))
	for _, bucket := range buckets {
		trend = append(trend, *bucket)
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})
	return trend
}

func bucketKey(date string, period Period) (string, error) {
	parsed, err := workouts.ParseDay(date)
	if err != nil {
		return "", err
	}

	switch period {
	case PeriodWeek:
		return isoWeekStart(parsed).Format(workouts.DayFormat), nil
	case PeriodMonth:
		return parsed.Format("2006-01"), nil
	case PeriodYear:
		return fmt.Sprintf("%d", parsed.Year()), nil
	default:
		return parsed.Format(workouts.DayFormat), nil
	}
}

// isoWeekStart returns the Monday of the given date's ISO week.
func isoWeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, 1-weekday)
}
