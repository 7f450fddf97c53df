package phrasing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clintwin/clintwin-backend/internal/akinator"
	"github.com/clintwin/clintwin-backend/internal/platform/envutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// Client rewords template questions through an OpenAI-compatible chat
// completions endpoint. The default upstream is the free Hack Club proxy.
// It implements akinator.Phraser; every failure mode is an error so the
// composer can fall back to the template.
type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	temp       float64
	httpClient *http.Client
}

func NewClient(log *logger.Logger) *Client {
	return &Client{
		log:     log.With("service", "PhrasingClient"),
		baseURL: envutil.String("HACKCLUB_API_URL", "https://ai.hackclub.com/proxy/v1/chat/completions"),
		apiKey:  envutil.String("HACKCLUB_API_KEY", ""),
		model:   envutil.String("HACKCLUB_MODEL", "qwen/qwen3-32b"),
		temp:    envutil.Float("HACKCLUB_TEMPERATURE", 0.3),
		httpClient: &http.Client{
			Timeout: time.Duration(envutil.Int("HACKCLUB_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type phrasedQuestion struct {
	QuestionText string `json:"question_text"`
}

const systemPrompt = "You generate MCQ questions to help identify medicines by their visual appearance. " +
	"NEVER mention medicine names in questions - only ask about colors, shapes, forms, and visual features. " +
	"Return valid JSON only."

func userPrompt(req akinator.PhraseRequest) string {
	optionsJSON, _ := json.Marshal(req.Options)
	return fmt.Sprintf(`You're helping someone remember which medicine they take by asking about its VISUAL appearance.

ATTRIBUTE TO ASK ABOUT: %s
EXAMPLE QUESTION: %q
OPTIONS TO USE: %s

Write a friendly, clear question asking about this visual feature.

IMPORTANT RULES:
- Ask about VISUAL characteristics (color, shape, form) - NOT the medicine name!
- Use simple language anyone can understand
- The question should help identify the medicine based on what it LOOKS like

Return ONLY this JSON (no extra text):
{"question_text": "your question here", "options": %s}`,
		strings.ReplaceAll(req.Attribute, "_", " "), req.TemplateText, optionsJSON, optionsJSON)
}

// Phrase asks the model for a reworded question and returns its text. The
// caller keeps ownership of the options regardless of what the model returns.
func (c *Client) Phrase(ctx context.Context, req akinator.PhraseRequest) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(req)},
		},
		Temperature: c.temp,
		MaxTokens:   300,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("phrasing upstream status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}

	content := StripFences(chat.Choices[0].Message.Content)
	var parsed phrasedQuestion
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", fmt.Errorf("parse question JSON: %w", err)
	}
	if strings.TrimSpace(parsed.QuestionText) == "" {
		return "", fmt.Errorf("empty question text")
	}
	return parsed.QuestionText, nil
}

// StripFences removes a surrounding markdown code block, with or without a
// language tag, from model output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	inner := parts[1]
	if strings.HasPrefix(inner, "json") {
		inner = inner[4:]
	}
	return strings.TrimSpace(inner)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
