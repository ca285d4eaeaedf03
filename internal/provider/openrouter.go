package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/valko/pereklad/internal/placeholder"
	"github.com/valko/pereklad/internal/postprocess"
)

var DefaultOpenRouterModels = []string{
	"google/gemini-2.0-flash-exp:free",
	"qwen/qwen2.5-72b-instruct:free",
	"mistralai/mistral-nemo:free",
	"meta-llama/llama-3.1-8b-instruct:free",
}

// OpenRouterBackend translates through the OpenRouter chat-completions API.
// Models are used in round-robin rotation so a retry after a failure lands
// on a different model.
type OpenRouterBackend struct {
	apiKey  string
	baseURL string
	referer string
	title   string
	models  []string
	next    atomic.Uint64
	client  *http.Client
}

func NewOpenRouterBackend(apiKey, baseURL, referer, title string, models []string) *OpenRouterBackend {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if referer == "" {
		referer = "https://pereklad.local"
	}
	if title == "" {
		title = "Pereklad"
	}
	if len(models) == 0 {
		models = DefaultOpenRouterModels
	}
	return &OpenRouterBackend{
		apiKey:  apiKey,
		baseURL: baseURL,
		referer: referer,
		title:   title,
		models:  models,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (b *OpenRouterBackend) Name() string {
	return "openrouter"
}

func (b *OpenRouterBackend) nextModel() string {
	n := b.next.Add(1) - 1
	return b.models[n%uint64(len(b.models))]
}

func (b *OpenRouterBackend) Translate(ctx context.Context, entry Entry) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("OpenRouter API key required")
	}

	model := b.nextModel()

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": buildSystemPrompt(entry)},
			{"role": "user", "content": entry.SourceText},
		},
		"temperature": 0.2,
		"max_tokens":  1024,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", b.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", b.apiKey))
	httpReq.Header.Set("HTTP-Referer", b.referer)
	httpReq.Header.Set("X-Title", b.title)

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ResponseError{Status: resp.StatusCode, Detail: truncate(string(body), 200)}
	}

	// Proxies and rate limiters sometimes answer 200 with an HTML error
	// page instead of JSON.
	if looksLikeHTML(body) {
		return "", &ResponseError{Detail: "HTML body where JSON was expected"}
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", &ResponseError{Detail: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if len(completion.Choices) == 0 {
		return "", &ResponseError{Detail: "no choices in response"}
	}

	text := postprocess.Clean(completion.Choices[0].Message.Content)
	if text == "" {
		return "", &ResponseError{Detail: fmt.Sprintf("empty completion from model %s", model)}
	}

	return text, nil
}

func buildSystemPrompt(entry Entry) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a professional translator. Translate the following user interface string to %s.\n", entry.TargetLanguage))
	sb.WriteString("Only respond with the translation, nothing else. No explanations, no quotes, just the translation.")
	sb.WriteString(" Prefer transliteration over translation for product names and domain-specific terminology.")
	sb.WriteString(" ")
	sb.WriteString(placeholder.InstructionHint())

	if entry.Context != "" {
		sb.WriteString(fmt.Sprintf("\n\nCONTEXT: %s", entry.Context))
	}

	return sb.String()
}

func looksLikeHTML(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
