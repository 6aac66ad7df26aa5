package leaderboard

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=leaderboard_test

type leaderboardService interface {
	Standings(ctx context.Context, board Board, period Period) ([]Entry, error)
}

type StandingsResponse struct {
	Board   Board   `json:"board"`
	Period  Period  `json:"period"`
	Entries []Entry `json:"entries"`
}

type Handler struct {
	service leaderboardService
}

func NewHandler(service leaderboardService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.standings")
	defer span.End()

	vars := mux.Vars(r)
	board, err := ParseBoard(vars["board"])
	if err != nil {
		if errors.Is(err, ErrUnknownBoard) {
			http.Error(w, "unknown leaderboard", http.StatusBadRequest)
			return
		}
		log.Errorf("parse leaderboard: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	period := ParsePeriod(r.URL.Query().Get("period"))

	entries, err := handler.service.Standings(ctx, board, period)
	if err != nil {
		log.Errorf("get leaderboard [%s] standings: %s", board, err)
		http.Error(w, "failed to get leaderboard standings", http.StatusInternalServerError)
		return
	}

	standingsJson, err := json.Marshal(StandingsResponse{
		Board:   board,
		Period:  period,
		Entries: entries,
	})
	if err != nil {
		log.Errorf("marshal leaderboard standings: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, standingsJson, http.StatusOK)
}
