package stats

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/liftlog/liftlog/internal/telemetry/tracing"
	"github.com/liftlog/liftlog/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=stats_mocks_test.go -package=stats_test

type workoutsRepo interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

type exerciseCatalog interface {
	Lookup(ctx context.Context) (map[string]workouts.CatalogEntry, error)
}

// Analyzer derives the display-ready analytics from a user's workout
// history. It reads a snapshot of the records per call and holds no state
// between calls.
type Analyzer struct {
	repo    workoutsRepo
	catalog exerciseCatalog
	now     func() time.Time
}

func NewAnalyzer(repo workoutsRepo, catalog exerciseCatalog) *Analyzer {
	return &Analyzer{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

func (a *Analyzer) Summary(ctx context.Context, userID string, period Period) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period", string(period)))

	userWorkouts, err := a.repo.ListAll(ctx, workouts.WorkoutParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	catalog, err := a.catalog.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	now := a.now()
	summary := Summarize(FilterByPeriod(userWorkouts, period, now), catalog, now)
	return &summary, nil
}

func (a *Analyzer) PRs(ctx context.Context, userID string) (_ []ExercisePR, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.prs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userWorkouts, err := a.repo.ListAll(ctx, workouts.WorkoutParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	prs := FindAllPRs(userWorkouts)
	if prs == nil {
		prs = make([]ExercisePR, 0)
	}
	return prs, nil
}

func (a *Analyzer) Trend(ctx context.Context, userID string, period Period) (_ []TrendBucket, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.trend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period", string(period)))

	userWorkouts, err := a.repo.ListAll(ctx, workouts.WorkoutParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	trend := Trend(FilterByPeriod(userWorkouts, period, a.now()), period)
	if trend == nil {
		trend = make([]TrendBucket, 0)
	}
	return trend, nil
}
