package stats

import (
	"math"

	"github.com/liftlog/liftlog/internal/workouts"
)

type PRType string

const (
	PRTypeMaxWeight   PRType = "maxWeight"
	PRTypeMaxVolume   PRType = "maxVolume"
	PRTypeMaxDistance PRType = "maxDistance"
	PRTypeMaxDuration PRType = "maxDuration"
	PRTypeBestPace    PRType = "bestPace"
	PRTypeMaxReps     PRType = "maxReps"
)

// ExercisePR is one personal record: the best value ever logged for one
// metric of one exercise, with the workout and day it happened on.
type ExercisePR struct {
	ExerciseID   string            `json:"exerciseId"`
	ExerciseName string            `json:"exerciseName"`
	Modality     workouts.Modality `json:"modality"`
	PRType       PRType            `json:"prType"`
	Value        float64           `json:"value"`
	Date         string            `json:"date"`
	WorkoutID    int               `json:"workoutId"`
}

// prMetric is one running maximum (or minimum, for pace) with the workout
// that achieved it.
type prMetric struct {
	value     float64
	date      string
	workoutID int
	set       bool
}

func (m *prMetric) updateMax(value float64, date string, workoutID int) {
	if !m.set || value > m.value {
		m.value = value
		m.date = date
		m.workoutID = workoutID
		m.set = true
	}
}

func (m *prMetric) updateMin(value float64, date string, workoutID int) {
	if !m.set || value < m.value {
		m.value = value
		m.date = date
		m.workoutID = workoutID
		m.set = true
	}
}

// prRecord tracks all metrics of one exercise key. The metrics share the
// record but update independently: a new best pace does not need a new
// max distance.
type prRecord struct {
	exerciseID string
	name       string
	nameDate   string
	modality   workouts.Modality

	maxWeight   prMetric
	maxVolume   prMetric
	maxReps     prMetric
	maxDistance prMetric
	maxDuration prMetric
	bestPace    prMetric
}

// FindAllPRs scans every exercise occurrence across the given workouts and
// extracts the personal records, per exercise key and modality. Strength
// max reps and calisthenics hold duration are tracked but not emitted.
// Output order follows first appearance of each exercise.
func FindAllPRs(workoutsList []workouts.Workout) []ExercisePR {
	records := make(map[string]*prRecord)
	var keyOrder []string

	for i := range workoutsList {
		w := &workoutsList[i]
		for _, e := range w.Exercises {
			key := e.Key()
			if key == "" {
				continue
			}

			record, ok := records[key]
			if !ok {
				record = &prRecord{
					exerciseID: key,
					modality:   e.Modality,
				}
				records[key] = record
				keyOrder = append(keyOrder, key)
			}
			if e.Name != "" && w.Date >= record.nameDate {
				record.name = e.Name
				record.nameDate = w.Date
			}

			switch e.Modality {
			case workouts.ModalityStrength:
				for _, s := range e.StrengthSets {
					record.maxWeight.updateMax(s.Weight, w.Date, w.ID)
					record.maxVolume.updateMax(float64(s.Reps)*s.Weight, w.Date, w.ID)
					record.maxReps.updateMax(float64(s.Reps), w.Date, w.ID)
				}
			case workouts.ModalityCardio:
				if e.CardioData == nil {
					continue
				}
				cd := e.CardioData
				record.maxDistance.updateMax(cd.Distance, w.Date, w.ID)
				record.maxDuration.updateMax(float64(cd.DurationSeconds), w.Date, w.ID)
				if pace := cardioPace(cd); pace > 0 {
					record.bestPace.updateMin(pace, w.Date, w.ID)
				}
			case workouts.ModalityCalisthenics:
				for _, s := range e.CalisthenicsSets {
					record.maxReps.updateMax(float64(s.Reps), w.Date, w.ID)
					record.maxDuration.updateMax(float64(s.DurationSeconds), w.Date, w.ID)
				}
			}
		}
	}

	var prs []ExercisePR
	for _, key := range keyOrder {
		record := records[key]
		emit := func(prType PRType, m prMetric) {
			if !m.set || m.value <= 0 {
				return
			}
			prs = append(prs, ExercisePR{
				ExerciseID:   record.exerciseID,
				ExerciseName: record.displayName(),
				Modality:     record.modality,
				PRType:       prType,
				Value:        m.value,
				Date:         m.date,
				WorkoutID:    m.workoutID,
			})
		}

		switch record.modality {
		case workouts.ModalityStrength:
			emit(PRTypeMaxWeight, record.maxWeight)
			emit(PRTypeMaxVolume, record.maxVolume)
		case workouts.ModalityCardio:
			emit(PRTypeMaxDistance, record.maxDistance)
			emit(PRTypeMaxDuration, record.maxDuration)
			emit(PRTypeBestPace, record.bestPace)
		case workouts.ModalityCalisthenics:
			emit(PRTypeMaxReps, record.maxReps)
		}
	}

	return prs
}

func (r *prRecord) displayName() string {
	if r.name != "" {
		return r.name
	}
	return r.exerciseID
}

// cardioPace returns the pace of a cardio entry in seconds per distance
// unit, preferring the explicitly logged pace. Zero means no valid pace.
func cardioPace(cd *workouts.CardioData) float64 {
	if cd.Pace > 0 && !math.IsInf(cd.Pace, 1) {
		return cd.Pace
	}
	if cd.Distance > 0 && cd.DurationSeconds > 0 {
		return float64(cd.DurationSeconds) / cd.Distance
	}
	return 0
}
