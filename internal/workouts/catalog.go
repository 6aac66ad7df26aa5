package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/liftlog/liftlog/internal/telemetry/tracing"
	"github.com/liftlog/liftlog/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCatalogEntryExists = errors.New("catalog entry already exists")

// CatalogEntry is the optional exercise catalog record, used to resolve
// display names and muscle groups for analytics. Workouts log fine without
// a catalog entry; everything degrades to id-as-name.
type CatalogEntry struct {
	ExerciseID  string    `json:"exerciseId"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CatalogRepo struct {
	db *pgxpool.Pool
}

func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{
		db: db,
	}
}

func (r *CatalogRepo) Add(ctx context.Context, entry CatalogEntry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO exercise_catalog (exercise_id, name, muscle_group, created_at)
			VALUES ($1, $2, $3, $4);`,
		entry.ExerciseID, entry.Name, entry.MuscleGroup, entry.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrCatalogEntryExists
		}
		return err
	}
	return nil
}

func (r *CatalogRepo) List(ctx context.Context) (_ []CatalogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT exercise_id, name, muscle_group, created_at FROM exercise_catalog ORDER BY name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.ExerciseID, &e.Name, &e.MuscleGroup, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if entries == nil {
		entries = make([]CatalogEntry, 0)
	}

	return entries, nil
}

// Lookup returns the catalog keyed by exercise id, for display-name and
// muscle-group resolution in the analytics handlers.
func (r *CatalogRepo) Lookup(ctx context.Context) (map[string]CatalogEntry, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]CatalogEntry, len(entries))
	for _, e := range entries {
		lookup[e.ExerciseID] = e
	}
	return lookup, nil
}
