package insights

import (
	"github.com/liftlog/liftlog/internal/workouts"
)

// HistoryPoint is one data point of an exercise metric history, e.g. the
// max bench press weight on one day. Histories are kept ascending by date.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// InsightRequest is the wire request to the remote insight scoring service.
type InsightRequest struct {
	Exercise string         `json:"exercise"`
	Metric   string         `json:"metric"`
	History  []HistoryPoint `json:"history"`
}

type Insight struct {
	IsNewPR       bool    `json:"isNewPR"`
	Delta         float64 `json:"delta"`
	PercentChange float64 `json:"percentChange"`
	FirstDate     string  `json:"firstDate"`
	LatestDate    string  `json:"latestDate"`
	InsightText   string  `json:"insightText"`
}

const (
	minHistoryPoints   = 8
	minHistorySpanDays = 14
)

// ShouldFetch says whether a history is worth sending to the remote
// service: at least 8 points spanning at least 14 calendar days. Short or
// dense histories produce noise insights, so the caller skips the call.
func ShouldFetch(history []HistoryPoint) bool {
	if len(history) < minHistoryPoints {
		return false
	}

	first, err := workouts.ParseDay(history[0].Date)
	if err != nil {
		return false
	}
	last, err := workouts.ParseDay(history[len(history)-1].Date)
	if err != nil {
		return false
	}

	spanDays := int(last.Sub(first).Hours() / 24)
	return spanDays >= minHistorySpanDays
}

// IsNewPR reports whether the latest history value is strictly greater
// than every earlier one. Computable locally, without the remote service.
func IsNewPR(history []HistoryPoint) bool {
	if len(history) == 0 {
		return false
	}

	latest := history[len(history)-1].Value
	for _, point := range history[:len(history)-1] {
		if point.Value >= latest {
			return false
		}
	}
	return true
}
