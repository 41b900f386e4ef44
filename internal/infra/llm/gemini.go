package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/internal/usecase/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient owns the API connection shared by both generators.
type GeminiClient struct {
	client      *genai.Client
	modelID     string
	temperature float32
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	modelID := strings.TrimSpace(cfg.Model)
	if modelID == "" {
		modelID = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		modelID:     modelID,
		temperature: cfg.Temperature,
	}, nil
}

func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// complete sends turns as a user-only chat and returns the reply text.
func (c *GeminiClient) complete(ctx context.Context, system string, turns []string, jsonOutput bool) (string, error) {
	if len(turns) == 0 {
		return "", errors.New("llm: gemini requires at least one message")
	}

	model := c.client.GenerativeModel(c.modelID)
	model.SetTemperature(c.temperature)
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	if jsonOutput {
		model.ResponseMIMEType = "application/json"
	}

	cs := model.StartChat()
	for _, turn := range turns[:len(turns)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  "user",
			Parts: []genai.Part{genai.Text(turn)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(turns[len(turns)-1]))
	if err != nil {
		return "", fmt.Errorf("llm: gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("llm: gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("llm: gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return strings.TrimSpace(text.String()), nil
}

type GeminiQuestionGenerator struct {
	client *GeminiClient
}

func NewGeminiQuestionGenerator(client *GeminiClient) shared.QuestionGenerator {
	return &GeminiQuestionGenerator{client: client}
}

func (g *GeminiQuestionGenerator) NextQuestion(ctx context.Context, history []intake.QAPair) (string, error) {
	return g.client.complete(ctx, questionSystemPrompt, questionTurns(history), false)
}

type GeminiReportGenerator struct {
	client *GeminiClient
}

func NewGeminiReportGenerator(client *GeminiClient) shared.ReportGenerator {
	return &GeminiReportGenerator{client: client}
}

func (g *GeminiReportGenerator) Generate(ctx context.Context, subject shared.ReportSubject, history []intake.QAPair) (report.Content, error) {
	text, err := g.client.complete(ctx, reportSystemPrompt, []string{reportPrompt(subject, history)}, true)
	if err != nil {
		return report.Content{}, err
	}
	return parseReport(text)
}
