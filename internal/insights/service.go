package insights

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/liftlog/liftlog/internal/telemetry/metrics"
	"github.com/liftlog/liftlog/internal/telemetry/tracing"
	"github.com/liftlog/liftlog/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=insights_mocks_test.go -package=insights_test

type insightsClient interface {
	GetInsight(ctx context.Context, insightReq InsightRequest) (*Insight, error)
}

type workoutsRepo interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

var (
	ErrNotEnoughHistory = errors.New("not enough history for an insight")
	ErrUnknownMetric    = errors.New("unknown insight metric")
)

type Metric string

const (
	MetricVolume    Metric = "volume"
	MetricMaxWeight Metric = "maxWeight"
	MetricDistance  Metric = "distance"
	MetricDuration  Metric = "duration"
	MetricReps      Metric = "reps"
)

func ParseMetric(value string) (Metric, error) {
	switch Metric(value) {
	case MetricVolume, MetricMaxWeight, MetricDistance, MetricDuration, MetricReps:
		return Metric(value), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMetric, value)
	}
}

// Service builds an exercise metric history from the user's workouts and
// fronts the remote insight call with the TTL cache.
type Service struct {
	client  insightsClient
	repo    workoutsRepo
	cache   *Cache
	metrics *metrics.Manager
}

func NewService(
	client insightsClient,
	repo workoutsRepo,
	cache *Cache,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		client:  client,
		repo:    repo,
		cache:   cache,
		metrics: metricsManager,
	}
}

func (s *Service) ExerciseInsight(
	ctx context.Context,
	userID, exerciseID string,
	metric Metric,
) (_ *Insight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.service.exerciseInsight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise_id", exerciseID),
		attribute.String("metric", string(metric)),
	)

	// scope the cache key per user, the same exercise id is shared
	cacheExercise := userID + "/" + exerciseID
	if cached, ok := s.cache.Get(cacheExercise, string(metric)); ok {
		s.metrics.CounterInsightCacheHits.Inc()
		return cached, nil
	}
	s.metrics.CounterInsightCacheMisses.Inc()

	userWorkouts, err := s.repo.ListAll(ctx, workouts.WorkoutParams{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	history := BuildHistory(userWorkouts, exerciseID, metric)
	if !ShouldFetch(history) {
		return nil, ErrNotEnoughHistory
	}

	insight, err := s.client.GetInsight(ctx, InsightRequest{
		Exercise: exerciseID,
		Metric:   string(metric),
		History:  history,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheExercise, string(metric), *insight)
	return insight, nil
}

// BuildHistory extracts one metric value per day for one exercise across
// the given workouts, ascending by date. Days where the exercise does not
// appear produce no point.
func BuildHistory(workoutsList []workouts.Workout, exerciseKey string, metric Metric) []HistoryPoint {
	valueByDate := make(map[string]float64)
	for i := range workoutsList {
		w := &workoutsList[i]
		for _, e := range w.Exercises {
			if e.Key() != exerciseKey {
				continue
			}
			value := metricValue(e, metric)
			if metric == MetricMaxWeight {
				if value > valueByDate[w.Date] {
					valueByDate[w.Date] = value
				}
			} else {
				valueByDate[w.Date] += value
			}
		}
	}

	history := make([]HistoryPoint, 0, len(valueByDate))
	for date, value := range valueByDate {
		history = append(history, HistoryPoint{Date: date, Value: value})
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})
	return history
}

func metricValue(e workouts.Exercise, metric Metric) float64 {
	switch metric {
	case MetricVolume:
		return e.Volume()
	case MetricMaxWeight:
		var maxWeight float64
		for _, s := range e.StrengthSets {
			if s.Weight > maxWeight {
				maxWeight = s.Weight
			}
		}
		return maxWeight
	case MetricDistance:
		return e.CardioDistance()
	case MetricDuration:
		return float64(e.CardioDurationSeconds())
	case MetricReps:
		return float64(e.RepCount())
	default:
		return 0
	}
}
