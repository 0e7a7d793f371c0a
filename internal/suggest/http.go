package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"recruit-workers/internal/common/errors"
	commonhttp "recruit-workers/internal/common/http"
	"recruit-workers/internal/common/logger"
)

const (
	careerPlanPath  = "/career-plan"
	maxResponseSize = 1 << 20
)

// HTTPGenerator calls the career-ai service's /career-plan endpoint.
type HTTPGenerator struct {
	baseURL    string
	apiKey     string
	client     *commonhttp.Client
	maxRetries int
	logger     logger.Logger
}

type careerPlanRequest struct {
	ProfileText   string `json:"profileText"`
	ObjectiveText string `json:"objectiveText"`
	MaxActions    int    `json:"maxActions"`
}

func NewHTTPGenerator(baseURL, apiKey string, client *commonhttp.Client, log logger.Logger) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		client:     client,
		maxRetries: 2,
		logger:     log.WithFields(map[string]interface{}{"generator": "http"}),
	}
}

func (g *HTTPGenerator) SuggestActions(ctx context.Context, profileText, objectiveText string, maxActions int) (*Result, error) {
	body, err := json.Marshal(careerPlanRequest{
		ProfileText:   profileText,
		ObjectiveText: objectiveText,
		MaxActions:    maxActions,
	})
	if err != nil {
		return nil, errors.NewUpstreamFailureError(ServiceName, err)
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, errors.NewUpstreamFailureError(ServiceName, ctx.Err())
			}
		}

		payload, retry, err := g.post(ctx, body)
		if err == nil {
			return Decode(payload)
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
		g.logger.Warn("career-plan request failed, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}

	return nil, errors.NewUpstreamFailureError(ServiceName, lastErr)
}

// post returns the response body on 200, or an error and whether the failure
// is worth retrying.
func (g *HTTPGenerator) post(ctx context.Context, body []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+careerPlanPath, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return payload, false, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("career-ai returned status %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("career-ai returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
}
