package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/liftlog/liftlog/internal/telemetry/metrics"
	"github.com/liftlog/liftlog/internal/telemetry/tracing"
	"github.com/liftlog/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	List(ctx context.Context, params ListParams) (_ []Workout, total int, err error)
	ListAll(ctx context.Context, params WorkoutParams) (_ []Workout, err error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id int) error
}

type catalogRepo interface {
	Add(ctx context.Context, entry CatalogEntry) error
	List(ctx context.Context) ([]CatalogEntry, error)
}

// WorkoutRequest is the wire shape of a logged workout: the exercises come
// in whatever shape the client (or a sync of old records) has stored, and
// are normalized before anything touches them.
type WorkoutRequest struct {
	ID        int           `json:"id"`
	UserID    string        `json:"userId"`
	Date      string        `json:"date"`
	IsRestDay bool          `json:"isRestDay"`
	Notes     string        `json:"notes"`
	Exercises []RawExercise `json:"exercises"`
	CreatedAt time.Time     `json:"createdAt"`
}

type AddWorkoutResponse struct {
	Workout
	CountForDay int `json:"countForDay"`
}

type UpdateWorkoutResponse struct {
	UpdatedID int `json:"updatedId"`
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo        workoutsRepo
	catalogRepo catalogRepo
	metrics     *metrics.Manager
}

func NewHandler(repo workoutsRepo, catalogRepo catalogRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:        repo,
		catalogRepo: catalogRepo,
		metrics:     metricsManager,
	}
}

func (handler *Handler) workoutFromRequest(req WorkoutRequest) (*Workout, error) {
	if req.UserID == "" {
		return nil, errors.New("user id empty")
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(DayFormat)
	}
	day, err := NormalizeDay(date)
	if err != nil {
		return nil, err
	}

	workout := &Workout{
		ID:        req.ID,
		UserID:    req.UserID,
		Date:      day,
		IsRestDay: req.IsRestDay,
		Notes:     req.Notes,
		Exercises: make([]Exercise, 0, len(req.Exercises)),
		CreatedAt: req.CreatedAt,
	}
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now()
	}

	for _, raw := range req.Exercises {
		workout.Exercises = append(workout.Exercises, NormalizeExercise(raw))
	}

	return workout, nil
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	workout, err := handler.workoutFromRequest(req)
	if err != nil {
		log.Tracef("new workout, invalid params: %s", err)
		http.Error(w, "error, invalid workout", http.StatusBadRequest)
		return
	}

	addedWorkout, err := handler.repo.Add(ctx, *workout)
	if err != nil {
		log.Errorf("failed to add new workout for user [%s]: %s", workout.UserID, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsAdded.Inc()

	day, _ := addedWorkout.Day()
	sameDayWorkouts, err := handler.repo.ListAll(ctx, WorkoutParams{
		UserID: addedWorkout.UserID,
		From:   &day,
		To:     &day,
	})
	if err != nil {
		// just log the error, no need to return error to the client
		log.Errorf("failed to get workouts for day [%s] [%s]: %s", addedWorkout.UserID, addedWorkout.Date, err)
	}

	addWorkoutResponse := AddWorkoutResponse{
		Workout:     *addedWorkout,
		CountForDay: len(sameDayWorkouts),
	}

	addedJson, err := json.Marshal(addWorkoutResponse)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "workout not found", http.StatusBadRequest)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update workout, unmarshal json params: %s", err)
		http.Error(w, "update workout failed", http.StatusBadRequest)
		return
	}

	workout, err := handler.workoutFromRequest(req)
	if err != nil {
		log.Tracef("update workout, invalid params: %s", err)
		http.Error(w, "error, invalid workout", http.StatusBadRequest)
		return
	}

	currentWorkout, err := handler.repo.Get(ctx, workout.ID)
	if err != nil && !errors.Is(err, ErrWorkoutNotFound) {
		log.Errorf("failed to get workout %d: %s", workout.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrWorkoutNotFound) {
		log.Debugf("workout %d not found", workout.ID)
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	log.Debugf("update workout %+v -> %+v", currentWorkout, workout)

	if err := handler.repo.Update(ctx, workout); err != nil {
		log.Errorf("failed to update workout [%d] for user [%s]: %s", workout.ID, workout.UserID, err)
		http.Error(w, "error, failed to update workout", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateWorkoutResponse{
		UpdatedID: workout.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrWorkoutNotFound) {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrWorkoutNotFound) {
		log.Debugf("workout %d not found", id)
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	log.Debugf("deleting workout %+v", workout)

	if err := handler.repo.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete workout %d: %s", id, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	vars := mux.Vars(r)
	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Tracef("handle list workouts, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Tracef("handle list workouts, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	listParams := ListParams{
		WorkoutParams: WorkoutParams{
			UserID: userID,
		},
		Page: page,
		Size: size,
	}

	foundWorkouts, total, err := handler.repo.List(ctx, listParams)
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	listResponse := ListResponse{
		Workouts: foundWorkouts,
		Total:    total,
	}

	listRespJson, err := json.Marshal(listResponse)
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *Handler) HandleCatalogList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.list")
	defer span.End()

	entries, err := handler.catalogRepo.List(ctx)
	if err != nil {
		log.Errorf("list catalog error: %s", err)
		http.Error(w, "failed to get exercise catalog", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("marshal catalog error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}

func (handler *Handler) HandleCatalogAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry CatalogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("new catalog entry, unmarshal json params: %s", err)
		http.Error(w, "add catalog entry failed", http.StatusBadRequest)
		return
	}

	if entry.ExerciseID == "" || entry.Name == "" {
		http.Error(w, "error, exercise id or name empty", http.StatusBadRequest)
		return
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := handler.catalogRepo.Add(ctx, entry); err != nil {
		if errors.Is(err, ErrCatalogEntryExists) {
			http.Error(w, "catalog entry already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add catalog entry [%s]: %s", entry.ExerciseID, err)
		http.Error(w, "error, failed to add catalog entry", http.StatusInternalServerError)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal catalog entry: %s", err)
		http.Error(w, "error, failed to add catalog entry", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}
