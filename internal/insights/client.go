package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/liftlog/liftlog/internal/telemetry/tracing"
)

const requestTimeout = 10 * time.Second

// ErrBadResponse marks a 2xx response whose body could not be understood.
var ErrBadResponse = errors.New("malformed insight response")

// StatusError is a non-2xx answer from the insight service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("insight service returned status %d", e.Code)
}

// Client talks to the remote insight scoring service. Failures surface as
// errors to the caller, never as default insights, and nothing is retried.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

func NewClient(apiURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		apiURL:     apiURL,
		httpClient: httpClient,
	}
}

func (c *Client) GetInsight(ctx context.Context, insightReq InsightRequest) (_ *Insight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.client.getInsight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reqJson, err := json.Marshal(insightReq)
	if err != nil {
		return nil, fmt.Errorf("marshal insight request: %w", err)
	}

	log.Debugf("requesting insight for [%s] metric [%s], %d history points",
		insightReq.Exercise, insightReq.Metric, len(insightReq.History))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read insight response: %w", err)
	}

	var insight Insight
	if err := json.Unmarshal(respBytes, &insight); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, err)
	}

	return &insight, nil
}
