package leaderboard

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/liftlog/liftlog/internal/telemetry/tracing"
	"github.com/liftlog/liftlog/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=leaderboard_mocks_test.go -package=leaderboard_test

type workoutsRepo interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

type Board string

const (
	BoardVolume      Board = "volume"
	BoardDistance    Board = "distance"
	BoardConsistency Board = "consistency"
)

var ErrUnknownBoard = fmt.Errorf("unknown leaderboard")

func ParseBoard(value string) (Board, error) {
	switch Board(value) {
	case BoardVolume, BoardDistance, BoardConsistency:
		return Board(value), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownBoard, value)
	}
}

type Period string

const (
	Period7Days  Period = "7days"
	Period30Days Period = "30days"
	PeriodAll    Period = "all"
)

// ParsePeriod maps a query param value to a known period, defaulting to all.
func ParsePeriod(value string) Period {
	switch Period(value) {
	case Period7Days, Period30Days:
		return Period(value)
	default:
		return PeriodAll
	}
}

// Service computes the multi-user standings: everyone's records grouped by
// user, filtered to the period, aggregated per board, then ranked.
type Service struct {
	repo workoutsRepo
	now  func() time.Time
}

func NewService(repo workoutsRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Standings(ctx context.Context, board Board, period Period) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.standings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("board", string(board)),
		attribute.String("period", string(period)),
	)

	allWorkouts, err := s.repo.ListAll(ctx, workouts.WorkoutParams{})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	byUser := make(map[string][]workouts.Workout)
	for _, w := range allWorkouts {
		if w.UserID == "" {
			continue
		}
		byUser[w.UserID] = append(byUser[w.UserID], w)
	}

	now := s.now()
	values := make(map[string]float64, len(byUser))
	for userID, userWorkouts := range byUser {
		values[userID] = boardValue(board, filterByPeriod(userWorkouts, period, now))
	}

	return Rank(values), nil
}

func boardValue(board Board, userWorkouts []workouts.Workout) float64 {
	switch board {
	case BoardVolume:
		var total float64
		for i := range userWorkouts {
			total += userWorkouts[i].TotalVolume()
		}
		return total
	case BoardDistance:
		var total float64
		for i := range userWorkouts {
			total += userWorkouts[i].TotalCardioDistance()
		}
		return total
	case BoardConsistency:
		activeDays := make(map[string]struct{})
		for i := range userWorkouts {
			if userWorkouts[i].IsActiveDay() {
				activeDays[userWorkouts[i].Date] = struct{}{}
			}
		}
		return float64(len(activeDays))
	default:
		return 0
	}
}

// filterByPeriod keeps the workouts dated on or after today minus the
// period length, today inclusive. Unparseable dates are logged and skipped.
func filterByPeriod(userWorkouts []workouts.Workout, period Period, now time.Time) []workouts.Workout {
	if period == PeriodAll {
		return userWorkouts
	}

	days := 7
	if period == Period30Days {
		days = 30
	}
	cutoff := workouts.LocalDay(now.AddDate(0, 0, -days))

	filtered := make([]workouts.Workout, 0, len(userWorkouts))
	for _, w := range userWorkouts {
		day, err := w.Day()
		if err != nil {
			log.Warnf("leaderboard, skipping workout %d with invalid date [%s]: %s", w.ID, w.Date, err)
			continue
		}
		if day.Before(cutoff) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}
