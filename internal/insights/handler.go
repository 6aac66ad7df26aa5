package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/liftlog/liftlog/internal/telemetry/tracing"
	"github.com/liftlog/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=insights_test

type insightsService interface {
	ExerciseInsight(ctx context.Context, userID, exerciseID string, metric Metric) (*Insight, error)
}

type Handler struct {
	service insightsService
}

func NewHandler(service insightsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleExerciseInsight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.exercise")
	defer span.End()

	vars := mux.Vars(r)
	exerciseID := vars["exid"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}
	metric, err := ParseMetric(vars["metric"])
	if err != nil {
		http.Error(w, "unknown metric", http.StatusBadRequest)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	insight, err := handler.service.ExerciseInsight(ctx, userID, exerciseID, metric)
	switch {
	case errors.Is(err, ErrNotEnoughHistory):
		http.Error(w, "not enough history for an insight", http.StatusUnprocessableEntity)
		return
	case err != nil:
		var statusErr *StatusError
		if errors.As(err, &statusErr) || errors.Is(err, ErrBadResponse) {
			log.Errorf("insight service failure for [%s/%s]: %s", userID, exerciseID, err)
			http.Error(w, "insight service failure", http.StatusBadGateway)
			return
		}
		log.Errorf("get insight for [%s/%s]: %s", userID, exerciseID, err)
		http.Error(w, "failed to get insight", http.StatusInternalServerError)
		return
	}

	insightJson, err := json.Marshal(insight)
	if err != nil {
		log.Errorf("marshal insight: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, insightJson, http.StatusOK)
}
