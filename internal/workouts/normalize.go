package workouts

import (
	"encoding/json"
	"math"
)

// RawExercise is the loose, stored shape of an exercise. Historical records
// were written by several app versions, so most fields are raw JSON and get
// validated one entry at a time:
//   - current shape: modality + matching typed array / object
//   - legacy single-set strength: {"sets": N, "reps": N, "weight": N}
//   - legacy array-of-sets strength: {"sets": [{"reps": N, "weight": N}, ...]}
//   - legacy calisthenics logged as strength sets: [{"reps": N}, ...]
type RawExercise struct {
	ExerciseID       string          `json:"exerciseId"`
	Name             string          `json:"name"`
	Modality         string          `json:"modality"`
	StrengthSets     json.RawMessage `json:"strengthSets"`
	CardioData       json.RawMessage `json:"cardioData"`
	CalisthenicsSets json.RawMessage `json:"calisthenicsSets"`

	// legacy top-level fields
	Sets   json.RawMessage `json:"sets"`
	Reps   json.RawMessage `json:"reps"`
	Weight json.RawMessage `json:"weight"`
}

// rawSetRow is a single stored set entry, all fields optional so that a
// missing or differently-typed field never kills the whole exercise.
type rawSetRow struct {
	Reps     *float64 `json:"reps"`
	Weight   *float64 `json:"weight"`
	Duration *float64 `json:"duration"`
}

type rawCardio struct {
	Duration *float64 `json:"duration"`
	Distance *float64 `json:"distance"`
	Pace     *float64 `json:"pace"`
}

// NormalizeExercise converts any known stored shape into a canonical Exercise.
// The result always satisfies the modality invariant: exactly the field set
// matching the modality is populated, even for fully malformed input, where
// it degrades to empty sets rather than failing. Idempotent: normalizing an
// already canonical exercise is a no-op.
func NormalizeExercise(raw RawExercise) Exercise {
	e := Exercise{
		ExerciseID: raw.ExerciseID,
		Name:       raw.Name,
		Modality:   parseModality(raw.Modality),
	}

	switch e.Modality {
	case ModalityCardio:
		e.CardioData = normalizeCardio(raw.CardioData)
	case ModalityCalisthenics:
		e.CalisthenicsSets = normalizeCalisthenicsSets(raw)
	default:
		e.StrengthSets = normalizeStrengthSets(raw)
	}

	return e
}

// parseModality defaults unknown or missing modalities to strength,
// matching what the oldest app versions logged.
func parseModality(s string) Modality {
	switch Modality(s) {
	case ModalityCardio:
		return ModalityCardio
	case ModalityCalisthenics:
		return ModalityCalisthenics
	default:
		return ModalityStrength
	}
}

func normalizeStrengthSets(raw RawExercise) []StrengthSet {
	sets := make([]StrengthSet, 0)

	for _, row := range decodeSetRows(raw.StrengthSets) {
		if set, ok := strengthSetFromRow(row); ok {
			sets = append(sets, set)
		}
	}
	if len(sets) > 0 {
		return sets
	}

	// legacy array-of-sets shape: "sets" holds the rows themselves
	for _, row := range decodeSetRows(raw.Sets) {
		if set, ok := strengthSetFromRow(row); ok {
			sets = append(sets, set)
		}
	}
	if len(sets) > 0 {
		return sets
	}

	// legacy single-set shape: {"sets": N, "reps": N, "weight": N}
	if reps, ok := decodeNumber(raw.Reps); ok {
		row := rawSetRow{Reps: &reps}
		if weight, ok := decodeNumber(raw.Weight); ok {
			row.Weight = &weight
		}
		if set, ok := strengthSetFromRow(row); ok {
			sets = append(sets, set)
		}
	}

	return sets
}

func strengthSetFromRow(row rawSetRow) (StrengthSet, bool) {
	reps, ok := positiveIntFrom(row.Reps)
	if !ok {
		return StrengthSet{}, false
	}
	var weight float64
	if row.Weight != nil {
		if *row.Weight < 0 || math.IsNaN(*row.Weight) || math.IsInf(*row.Weight, 0) {
			return StrengthSet{}, false
		}
		weight = *row.Weight
	}
	return StrengthSet{Reps: reps, Weight: weight}, true
}

func normalizeCalisthenicsSets(raw RawExercise) []CalisthenicsSet {
	sets := make([]CalisthenicsSet, 0)

	rows := decodeSetRows(raw.CalisthenicsSets)
	if len(rows) == 0 {
		// legacy: calisthenics recorded through the strength sets array,
		// weight is dropped on conversion
		rows = decodeSetRows(raw.StrengthSets)
	}
	if len(rows) == 0 {
		rows = decodeSetRows(raw.Sets)
	}

	for _, row := range rows {
		reps, ok := positiveIntFrom(row.Reps)
		if !ok {
			continue
		}
		set := CalisthenicsSet{Reps: reps}
		if duration, ok := positiveIntFrom(row.Duration); ok {
			set.DurationSeconds = duration
		}
		sets = append(sets, set)
	}

	return sets
}

// normalizeCardio always returns cardio data for a cardio exercise; a fully
// absent stored object falls back to a zero duration instead of dropping the
// exercise (kept for compatibility with what the older versions stored).
func normalizeCardio(raw json.RawMessage) *CardioData {
	data := &CardioData{}

	var rc rawCardio
	if len(raw) == 0 || json.Unmarshal(raw, &rc) != nil {
		return data
	}

	if duration, ok := positiveIntFrom(rc.Duration); ok {
		data.DurationSeconds = duration
	}
	if rc.Distance != nil && *rc.Distance > 0 && !math.IsInf(*rc.Distance, 0) {
		data.Distance = *rc.Distance
	}
	if rc.Pace != nil && *rc.Pace > 0 && !math.IsInf(*rc.Pace, 0) {
		data.Pace = *rc.Pace
	}

	return data
}

// decodeSetRows decodes a raw JSON array of set entries, dropping entries
// that fail to decode instead of discarding the whole array.
func decodeSetRows(raw json.RawMessage) []rawSetRow {
	if len(raw) == 0 {
		return nil
	}

	var rawRows []json.RawMessage
	if err := json.Unmarshal(raw, &rawRows); err != nil {
		return nil
	}

	rows := make([]rawSetRow, 0, len(rawRows))
	for _, rawRow := range rawRows {
		var row rawSetRow
		if err := json.Unmarshal(rawRow, &row); err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func decodeNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

func positiveIntFrom(f *float64) (int, bool) {
	if f == nil {
		return 0, false
	}
	if *f <= 0 || math.IsNaN(*f) || math.IsInf(*f, 0) || *f != math.Trunc(*f) {
		return 0, false
	}
	return int(*f), true
}
