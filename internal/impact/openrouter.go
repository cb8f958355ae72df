package impact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel   = "google/gemini-2.5-flash"

	promptFormat = "You are an expert task management system that assigns point values " +
		"to household chores based on their difficulty and time required. " +
		"Respond with a single integer from 1 to 10. No extra text. Chore: %s"
)

// OpenRouterEstimator asks an LLM through the OpenRouter chat-completions
// API for a chore's impact. Every request is bounded by the configured
// timeout; callers treat any returned error as a signal to use Fallback.
type OpenRouterEstimator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenRouterEstimator creates an estimator with the given API key and
// per-request timeout.
func NewOpenRouterEstimator(apiKey string, timeout time.Duration) *OpenRouterEstimator {
	return &OpenRouterEstimator{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	TopP     int       `json:"top_p"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Estimate asks the model for a 1-10 difficulty score.
func (e *OpenRouterEstimator) Estimate(ctx context.Context, title, description string) (int, error) {
	subject := title
	if description != "" {
		subject += " - " + description
	}

	body, err := json.Marshal(chatRequest{
		Model:    e.model,
		Messages: []message{{Role: "user", Content: fmt.Sprintf(promptFormat, subject)}},
		TopP:     1,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("openrouter request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("openrouter returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return 0, fmt.Errorf("openrouter returned no choices")
	}

	value, err := strconv.Atoi(strings.TrimSpace(decoded.Choices[0].Message.Content))
	if err != nil {
		return 0, fmt.Errorf("openrouter returned a non-integer score: %w", err)
	}
	return value, nil
}
