package inference

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"optischolar/internal/logging"
)

// DefaultGeminiModel is used when the config does not name one.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient wraps the genai SDK and implements Grader and Assistant.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed inference client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Grade scores a submission. The prompt constrains the reply to SCORE,
// FEEDBACK and REASONING lines which are parsed and clamped to the
// assignment's max score.
func (g *GeminiClient) Grade(ctx context.Context, req GradeRequest) (GradeResult, error) {
	if err := req.Validate(); err != nil {
		return GradeResult{}, err
	}

	prompt := fmt.Sprintf(`You are grading a university assignment submission.

Assignment: %s
Description: %s
Maximum score: %d

Student submission:
%s

Respond with exactly three lines:
SCORE: <integer between 0 and %d>
FEEDBACK: <2-3 sentences of constructive feedback for the student>
REASONING: <1-2 sentences explaining the score>`,
		req.AssignmentTitle, req.Description, req.MaxScore, req.SubmissionText, req.MaxScore)

	timer := logging.StartTimer(logging.CategoryInference, "gemini.Grade")
	defer timer.Stop()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		logging.Get(logging.CategoryInference).Error("grade call failed: %v", err)
		return GradeResult{}, fmt.Errorf("grading call failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return GradeResult{}, fmt.Errorf("grading call returned no content")
	}
	result := parseGradeResponse(text, req.MaxScore)
	logging.Inference("graded %q: %d/%d", req.AssignmentTitle, result.Score, req.MaxScore)
	return result, nil
}

// Ask answers a student question. The reply is markdown for glamour.
func (g *GeminiClient) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", &ValidationError{Field: "question", Message: "question is empty"}
	}

	prompt := fmt.Sprintf(`You are a study assistant for university students.
Answer concisely in markdown. If the question is not about studying or
coursework, redirect the student politely.

Question: %s`, question)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		logging.Get(logging.CategoryInference).Error("assistant call failed: %v", err)
		return "", fmt.Errorf("assistant call failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("assistant call returned no content")
	}
	return text, nil
}
