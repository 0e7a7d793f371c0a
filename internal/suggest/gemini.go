package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "recruit-workers/internal/common/errors"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the slice of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator asks a Gemini model for a JSON career plan.
type GeminiGenerator struct {
	models    contentGenerator
	modelName string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &GeminiGenerator{models: client.Models, modelName: model}, nil
}

func (g *GeminiGenerator) SuggestActions(ctx context.Context, profileText, objectiveText string, maxActions int) (*Result, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(buildPrompt(profileText, objectiveText, maxActions)), cfg)
	if err != nil {
		return nil, apperrors.NewUpstreamFailureError(ServiceName, fmt.Errorf("generate content: %w", err))
	}

	text := responseText(resp)
	if text == "" {
		return nil, apperrors.NewUpstreamFailureError(ServiceName, errors.New("gemini api returned empty response"))
	}
	return Decode([]byte(stripCodeFence(text)))
}

func buildPrompt(profileText, objectiveText string, maxActions int) string {
	var b strings.Builder
	b.WriteString("You are an expert career coach. Reply with JSON only, shaped as\n")
	b.WriteString(`{"compatibilityScore": <number between 0 and 1>, "actions": [{"label": "...", "category": "..."}]}`)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Return at most %d specific, actionable steps, most important first.\n", maxActions)
	b.WriteString("Use one of these categories: CERTIFICATION, PROJECT, EXPERIENCE, SKILL, PORTFOLIO, NETWORKING, CV, INTERVIEW.\n")
	b.WriteString("compatibilityScore estimates how ready the candidate already is for the goal.\n\n")
	b.WriteString("CANDIDATE PROFILE:\n")
	b.WriteString(profileText)
	b.WriteString("\n\nTARGET CAREER GOAL:\n")
	b.WriteString(objectiveText)
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
		if builder.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(builder.String())
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
