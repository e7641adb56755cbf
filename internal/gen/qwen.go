// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// defaultQwenBaseURL is the DashScope OpenAI-compatible endpoint.
const defaultQwenBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// QwenBackend calls a Qwen model through the OpenAI-compatible chat
// completions API.
type QwenBackend struct {
	APIKey string
	Model  string

	// BaseURL overrides the DashScope endpoint; tests point it at an
	// httptest server.
	BaseURL string

	Client *http.Client
}

// Name returns the backend identifier.
func (b *QwenBackend) Name() string { return "qwen" }

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Generate performs one chat completion call at temperature 0.
// Connectivity failures and 429/5xx responses come back as
// *TransientError; request errors (400-class) as *ValidationError.
func (b *QwenBackend) Generate(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ValidationError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	base := b.BaseURL
	if base == "" {
		base = defaultQwenBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &ValidationError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &TransientError{Err: fmt.Errorf("calling chat API: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", classifyStatus(resp.StatusCode,
			fmt.Errorf("chat API returned %d: %s", resp.StatusCode, string(body)))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", &TransientError{Err: fmt.Errorf("decoding chat response: %w", err)}
	}

	if len(cResp.Choices) == 0 || cResp.Choices[0].Message.Content == "" {
		return "", &TransientError{Err: fmt.Errorf("chat API returned empty content")}
	}

	return cResp.Choices[0].Message.Content, nil
}
