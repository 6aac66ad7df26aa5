package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/liftlog/liftlog/internal/telemetry/metrics"
	"github.com/liftlog/liftlog/internal/telemetry/tracing"
	"github.com/liftlog/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsAnalyzer interface {
	Summary(ctx context.Context, userID string, period Period) (*Summary, error)
	PRs(ctx context.Context, userID string) ([]ExercisePR, error)
	Trend(ctx context.Context, userID string, period Period) ([]TrendBucket, error)
}

const (
	megabyte              = 1024 * 1024
	statsCacheSize        = 10 * megabyte
	statsCacheExpireInSec = 5 * 60
)

type Handler struct {
	analyzer statsAnalyzer
	cache    *freecache.Cache
	metrics  *metrics.Manager
}

func NewHandler(analyzer statsAnalyzer, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		analyzer: analyzer,
		cache:    freecache.NewCache(statsCacheSize),
		metrics:  metricsManager,
	}
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.summary")
	defer span.End()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	period := ParsePeriod(r.URL.Query().Get("period"))

	cacheKey := fmt.Sprintf("summary::%s::%s", userID, period)
	if cached, err := handler.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("stats summary for user [%s] served from cache", userID)
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	summary, err := handler.analyzer.Summary(ctx, userID, period)
	if err != nil {
		log.Errorf("get stats summary for user [%s]: %s", userID, err)
		http.Error(w, "failed to get stats summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal stats summary: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set([]byte(cacheKey), summaryJson, statsCacheExpireInSec); err != nil {
		log.Errorf("failed to cache stats summary for user [%s]: %s", userID, err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summaryJson, http.StatusOK)
}

func (handler *Handler) HandlePRs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.prs")
	defer span.End()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	cacheKey := fmt.Sprintf("prs::%s", userID)
	if cached, err := handler.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("prs for user [%s] served from cache", userID)
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	handler.metrics.CounterPRScans.Inc()

	prs, err := handler.analyzer.PRs(ctx, userID)
	if err != nil {
		log.Errorf("get prs for user [%s]: %s", userID, err)
		http.Error(w, "failed to get personal records", http.StatusInternalServerError)
		return
	}

	prsJson, err := json.Marshal(prs)
	if err != nil {
		log.Errorf("marshal prs: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set([]byte(cacheKey), prsJson, statsCacheExpireInSec); err != nil {
		log.Errorf("failed to cache prs for user [%s]: %s", userID, err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, prsJson, http.StatusOK)
}

func (handler *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.trend")
	defer span.End()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	period := ParsePeriod(r.URL.Query().Get("period"))

	cacheKey := fmt.Sprintf("trend::%s::%s", userID, period)
	if cached, err := handler.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("trend for user [%s] served from cache", userID)
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	trend, err := handler.analyzer.Trend(ctx, userID, period)
	if err != nil {
		log.Errorf("get trend for user [%s]: %s", userID, err)
		http.Error(w, "failed to get trend", http.StatusInternalServerError)
		return
	}

	trendJson, err := json.Marshal(trend)
	if err != nil {
		log.Errorf("marshal trend: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set([]byte(cacheKey), trendJson, statsCacheExpireInSec); err != nil {
		log.Errorf("failed to cache trend for user [%s]: %s", userID, err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, trendJson, http.StatusOK)
}
