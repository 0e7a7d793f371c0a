// Package suggest talks to the external generator that proposes career
// actions for a candidate profile and objective.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/metrics"
	"recruit-workers/internal/common/validation"
	"recruit-workers/internal/readiness"
)

// ServiceName identifies the generator in errors and logs.
const ServiceName = "career-ai"

// Result is a validated generator answer.
type Result struct {
	Compatibility float64                `json:"compatibilityScore"`
	Actions       []readiness.Suggestion `json:"actions"`
}

// Generator proposes up to maxActions actions. Implementations return an
// UPSTREAM_FAILURE error for any transport failure or unusable payload.
type Generator interface {
	SuggestActions(ctx context.Context, profileText, objectiveText string, maxActions int) (*Result, error)
}

var resultSchema = validation.MustCompile("career-plan-response", `{
  "type": "object",
  "required": ["compatibilityScore", "actions"],
  "properties": {
    "compatibilityScore": {"type": "number", "minimum": 0, "maximum": 1},
    "actions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label"],
        "properties": {
          "label": {"type": "string", "minLength": 1, "maxLength": 500},
          "category": {"type": ["string", "null"], "maxLength": 50}
        }
      }
    }
  }
}`)

// Decode parses and validates a raw generator payload.
func Decode(payload []byte) (*Result, error) {
	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, errors.NewUpstreamFailureError(ServiceName, fmt.Errorf("malformed payload: %w", err))
	}

	res, err := resultSchema.Validate(doc)
	if err != nil {
		return nil, errors.NewUpstreamFailureError(ServiceName, err)
	}
	if !res.Valid {
		return nil, errors.NewUpstreamFailureError(ServiceName, fmt.Errorf("unusable payload: %s", res.Error()))
	}

	var out Result
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, errors.NewUpstreamFailureError(ServiceName, err)
	}
	return &out, nil
}

// Instrumented records call latency for a generator.
type Instrumented struct {
	next     Generator
	provider string
}

func Instrument(provider string, next Generator) *Instrumented {
	return &Instrumented{next: next, provider: provider}
}

func (i *Instrumented) SuggestActions(ctx context.Context, profileText, objectiveText string, maxActions int) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.SuggestionLatency.WithLabelValues(i.provider).Observe(time.Since(start).Seconds())
	}()
	return i.next.SuggestActions(ctx, profileText, objectiveText, maxActions)
}
