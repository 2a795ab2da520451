package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// AIClient wraps the hosted chat-completion API. Failures propagate to the
// caller; there is no canned fallback content.
type AIClient struct {
	client  *resty.Client
	apiKey  string
	baseURL string
	model   string
}

func NewAIClientFromEnv() *AIClient {
	baseURL := os.Getenv("AI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AIClient{
		client:  resty.New().SetTimeout(60 * time.Second),
		apiKey:  os.Getenv("AI_API_KEY"),
		baseURL: baseURL,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user prompt pair and returns the raw text reply.
func (ai *AIClient) Complete(systemPrompt, userPrompt string) (string, error) {
	if ai.apiKey == "" {
		return "", fmt.Errorf("AI_API_KEY is not set")
	}

	requestBody := map[string]any{
		"model": ai.model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	resp, err := ai.client.R().
		SetHeader("Authorization", "Bearer "+ai.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(requestBody).
		Post(ai.baseURL + "/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// CompleteJSON asks for a JSON reply and unmarshals it into out, tolerating
// the markdown code fences the provider sometimes wraps around JSON.
func (ai *AIClient) CompleteJSON(systemPrompt, userPrompt string, out any) error {
	content, err := ai.Complete(systemPrompt+" Reply with JSON only, no prose.", userPrompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(StripJSONFences(content)), out); err != nil {
		return fmt.Errorf("failed to parse AI JSON reply: %w", err)
	}
	return nil
}

// StripJSONFences removes a surrounding ```json ... ``` block if present.
func StripJSONFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
