package stats

import (
	"time"

	"github.com/liftlog/liftlog/internal/workouts"
)

// Summary is the aggregate view over a set of workouts: totals, streaks
// and the favorite exercise, ready for display.
type Summary struct {
	Workouts              int               `json:"workouts"`
	ActiveDays            int               `json:"activeDays"`
	CurrentStreak         int               `json:"currentStreak"`
	LongestStreak         int               `json:"longestStreak"`
	FavoriteExercise      *FavoriteExercise `json:"favoriteExercise,omitempty"`
	TotalVolume           float64           `json:"totalVolume"`
	TotalReps             int               `json:"totalReps"`
	TotalCardioDistance   float64           `json:"totalCardioDistance"`
	TotalCardioDuration   int               `json:"totalCardioDuration"`
	TotalCalisthenicsReps int               `json:"totalCalisthenicsReps"`
}

type FavoriteExercise struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

func TotalVolume(workoutsList []workouts.Workout) float64 {
	var total float64
	for i := range workoutsList {
		total += workoutsList[i].TotalVolume()
	}
	return total
}

func TotalReps(workoutsList []workouts.Workout) int {
	var total int
	for i := range workoutsList {
		total += workoutsList[i].TotalReps()
	}
	return total
}

func TotalCardioDuration(workoutsList []workouts.Workout) int {
	var total int
	for i := range workoutsList {
		total += workoutsList[i].TotalCardioDuration()
	}
	return total
}

func TotalCardioDistance(workoutsList []workouts.Workout) float64 {
	var total float64
	for i := range workoutsList {
		total += workoutsList[i].TotalCardioDistance()
	}
	return total
}

func TotalCalisthenicsReps(workoutsList []workouts.Workout) int {
	var total int
	for _, w := range workoutsList {
		for _, e := range w.Exercises {
			if e.Modality != workouts.ModalityCalisthenics {
				continue
			}
			for _, s := range e.CalisthenicsSets {
				total += s.Reps
			}
		}
	}
	return total
}

// FindFavoriteExercise returns the most logged exercise across the given
// workouts. Ties go to the exercise seen first. The display name comes from
// the catalog when available, otherwise from the most recently logged name.
func FindFavoriteExercise(
	workoutsList []workouts.Workout,
	catalog map[string]workouts.CatalogEntry,
) *FavoriteExercise {
	counts := make(map[string]int)
	var firstSeen []string
	latestName := make(map[string]string)
	latestNameDate := make(map[string]string)

	for _, w := range workoutsList {
		for _, e := range w.Exercises {
			key := e.Key()
			if key == "" {
				continue
			}
			if _, ok := counts[key]; !ok {
				firstSeen = append(firstSeen, key)
			}
			counts[key]++
			if e.Name != "" && w.Date >= latestNameDate[key] {
				latestName[key] = e.Name
				latestNameDate[key] = w.Date
			}
		}
	}

	if len(firstSeen) == 0 {
		return nil
	}

	favorite := firstSeen[0]
	for _, key := range firstSeen[1:] {
		if counts[key] > counts[favorite] {
			favorite = key
		}
	}

	name := latestName[favorite]
	if entry, ok := catalog[favorite]; ok && entry.Name != "" {
		name = entry.Name
	}
	if name == "" {
		name = favorite
	}

	return &FavoriteExercise{
		ExerciseID: favorite,
		Name:       name,
		Count:      counts[favorite],
	}
}

// Summarize computes the full aggregate summary over the given workouts.
// Streaks count days with at least one active entry, rest days included.
func Summarize(
	workoutsList []workouts.Workout,
	catalog map[string]workouts.CatalogEntry,
	now time.Time,
) Summary {
	activeDaySet := make(map[string]struct{})
	var activeDays []string
	for i := range workoutsList {
		w := &workoutsList[i]
		if !w.IsActiveDay() {
			continue
		}
		if _, ok := activeDaySet[w.Date]; ok {
			continue
		}
		activeDaySet[w.Date] = struct{}{}
		activeDays = append(activeDays, w.Date)
	}

	return Summary{
		Workouts:              len(workoutsList),
		ActiveDays:            len(activeDays),
		CurrentStreak:         CurrentStreak(activeDays, now),
		LongestStreak:         LongestStreak(activeDays),
		FavoriteExercise:      FindFavoriteExercise(workoutsList, catalog),
		TotalVolume:           TotalVolume(workoutsList),
		TotalReps:             TotalReps(workoutsList),
		TotalCardioDistance:   TotalCardioDistance(workoutsList),
		TotalCardioDuration:   TotalCardioDuration(workoutsList),
		TotalCalisthenicsReps: TotalCalisthenicsReps(workoutsList),
	}
}
