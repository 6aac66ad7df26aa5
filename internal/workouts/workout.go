package workouts

import (
	"fmt"
	"time"
)

// DayFormat is the local-calendar date layout used for workout dates.
// Dates are stored and compared as plain YYYY-MM-DD strings on purpose:
// streak math must not shift across timezones.
const DayFormat = "2006-01-02"

// Workout is a dated container of exercises owned by exactly one user.
// A rest day counts toward consistency but carries no exercises.
type Workout struct {
	ID        int        `json:"id"`
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	IsRestDay bool       `json:"isRestDay,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TotalVolume is the strength-only volume of the workout. Recomputed from
// the sets, never stored as a source of truth.
func (w *Workout) TotalVolume() float64 {
	var volume float64
	for _, e := range w.Exercises {
		volume += e.Volume()
	}
	return volume
}

func (w *Workout) TotalReps() int {
	var reps int
	for _, e := range w.Exercises {
		reps += e.RepCount()
	}
	return reps
}

func (w *Workout) TotalCardioDuration() int {
	var seconds int
	for _, e := range w.Exercises {
		seconds += e.CardioDurationSeconds()
	}
	return seconds
}

func (w *Workout) TotalCardioDistance() float64 {
	var distance float64
	for _, e := range w.Exercises {
		distance += e.CardioDistance()
	}
	return distance
}

// ExerciseIDs returns the unique exercise grouping keys, in first-seen order.
func (w *Workout) ExerciseIDs() []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		key := e.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		ids = append(ids, key)
	}
	return ids
}

// IsActiveDay reports whether the workout counts toward consistency:
// it either has exercises or is an explicitly logged rest day.
func (w *Workout) IsActiveDay() bool {
	return len(w.Exercises) > 0 || w.IsRestDay
}

// ParseDay parses a YYYY-MM-DD date string. Timestamps from older clients
// are tolerated by cutting them down to their date part.
func ParseDay(date string) (time.Time, error) {
	if len(date) > len(DayFormat) {
		date = date[:len(DayFormat)]
	}
	day, err := time.Parse(DayFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", date, err)
	}
	return day, nil
}

// NormalizeDay returns the canonical YYYY-MM-DD form of a stored date string.
func NormalizeDay(date string) (string, error) {
	day, err := ParseDay(date)
	if err != nil {
		return "", err
	}
	return day.Format(DayFormat), nil
}

// Day returns the workout date as YYYY-MM-DD, or an error for legacy
// records with an unparseable date.
func (w *Workout) Day() (time.Time, error) {
	return ParseDay(w.Date)
}

// LocalDay maps a wall-clock instant to its calendar date in that instant's
// location, returned as the UTC midnight that parsed workout dates live on.
// Truncating to 24h instead would land on the wrong date east or west of UTC.
func LocalDay(t time.Time) time.Time {
	day, _ := ParseDay(t.Format(DayFormat))
	return day
}
