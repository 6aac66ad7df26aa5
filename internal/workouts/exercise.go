package workouts

// Modality determines which performance fields of an exercise apply.
type Modality string

const (
	ModalityStrength     Modality = "strength"
	ModalityCardio       Modality = "cardio"
	ModalityCalisthenics Modality = "calisthenics"
)

type StrengthSet struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type CardioData struct {
	// DurationSeconds can be 0 when the stored entry had no cardio data at all
	DurationSeconds int     `json:"duration"`
	Distance        float64 `json:"distance,omitempty"`
	Pace            float64 `json:"pace,omitempty"`
}

type CalisthenicsSet struct {
	Reps            int `json:"reps"`
	DurationSeconds int `json:"duration,omitempty"`
}

// Exercise is the canonical in-memory shape of a logged exercise.
// Exactly one of StrengthSets / CardioData / CalisthenicsSets is populated,
// matching Modality. NormalizeExercise enforces this for stored shapes.
type Exercise struct {
	// ExerciseID is the stable catalog identifier; may be empty for
	// free-form entries, in which case Name is the grouping key
	ExerciseID string `json:"exerciseId,omitempty"`
	// Name is the display name frozen at log time
	Name     string   `json:"name"`
	Modality Modality `json:"modality"`

	StrengthSets     []StrengthSet     `json:"strengthSets,omitempty"`
	CardioData       *CardioData       `json:"cardioData,omitempty"`
	CalisthenicsSets []CalisthenicsSet `json:"calisthenicsSets,omitempty"`
}

// Key returns the grouping key for analytics: the stable exercise id
// when present, the display name otherwise.
func (e Exercise) Key() string {
	if e.ExerciseID != "" {
		return e.ExerciseID
	}
	return e.Name
}

// Volume is the strength training volume of this exercise, sum of reps x weight
// over all strength sets. Cardio and calisthenics contribute 0.
func (e Exercise) Volume() float64 {
	var volume float64
	for _, set := range e.StrengthSets {
		volume += float64(set.Reps) * set.Weight
	}
	return volume
}

// RepCount sums reps over strength and calisthenics sets. Cardio contributes 0.
func (e Exercise) RepCount() int {
	var reps int
	for _, set := range e.StrengthSets {
		reps += set.Reps
	}
	for _, set := range e.CalisthenicsSets {
		reps += set.Reps
	}
	return reps
}

func (e Exercise) CardioDurationSeconds() int {
	if e.CardioData == nil {
		return 0
	}
	return e.CardioData.DurationSeconds
}

func (e Exercise) CardioDistance() float64 {
	if e.CardioData == nil {
		return 0
	}
	return e.CardioData.Distance
}
