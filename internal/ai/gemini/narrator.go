package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/subject-advisor/internal/ai"
	"github.com/spigell/subject-advisor/internal/logger"
	"github.com/spigell/subject-advisor/internal/recommend"
	"github.com/spigell/subject-advisor/internal/survey"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	systemInstruction = "Respond with a single JSON object and nothing else."
)

// Narrator asks Gemini for a short commentary on an analysis.
type Narrator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Narrator = (*Narrator)(nil)

// NewNarrator creates a Narrator on top of generator.
func NewNarrator(generator contentGenerator, maxLogLength int, log *zap.Logger) *Narrator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Narrator{
		generator: generator,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// Narrate implements ai.Narrator.
func (n *Narrator) Narrate(ctx context.Context, s survey.Result, a recommend.Analysis) (*ai.Commentary, error) {
	if len(a.Recommendations) == 0 {
		return nil, errors.New("analysis has no recommendations")
	}

	surveyJSON, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal survey payload: %w", err)
	}

	analysisJSON, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	prompt := buildPrompt(string(surveyJSON), string(analysisJSON))

	n.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, n.maxLogLen)),
	)

	raw, err := n.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	n.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, n.maxLogLen)),
	)

	text, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	return &ai.Commentary{Text: text, Raw: raw}, nil
}

func buildPrompt(surveyJSON, analysisJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Survey:\n{{SURVEY_JSON}}\n\nAnalysis:\n{{ANALYSIS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{SURVEY_JSON}}", surveyJSON)
	return strings.ReplaceAll(prompt, "{{ANALYSIS_JSON}}", analysisJSON)
}

func parseResponse(raw string) (string, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	text, _ := data["commentary"].(string)
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("gemini response has no commentary")
	}

	return text, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
