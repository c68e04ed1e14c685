package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/skinpredict/backend/internal/domain"
)

const visionSystemPrompt = "You are a dermatology expert AI. Analyze the image to determine skin type " +
	"(Normal, Dry, or Oily) and identify any skin issues like Acne, Redness, or Bags under eyes. " +
	"Provide confidence levels for each assessment."

const visionUserPrompt = "Analyze this facial image and identify the skin type and any skin issues present."

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatMessage content is either a plain string or a list of multimodal parts
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client handles communication with the Groq chat/vision completion API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// NewClient creates a new Groq API client
func NewClient(apiKey, baseURL, model string) *Client {
	// Free-tier chat quota is 30 requests/minute
	limiter := rate.NewLimiter(rate.Limit(0.5), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
		log:         logrus.WithField("component", "groq"),
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends a conversation to the chat completion API and returns the
// assistant's reply text
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	return c.complete(ctx, payload)
}

// DescribeImage sends a base64-encoded facial image with the dermatology
// prompt and returns the model's descriptive analysis
func (c *Client) DescribeImage(ctx context.Context, imageBase64 string) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Temperature: 0.2,
		MaxTokens:   500,
		Messages: []chatMessage{
			{Role: "system", Content: visionSystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: visionUserPrompt},
				{Type: "image_url", ImageURL: &imageURL{
					URL: fmt.Sprintf("data:image/jpeg;base64,%s", imageBase64),
				}},
			}},
		},
	}

	return c.complete(ctx, payload)
}

func (c *Client) complete(ctx context.Context, payload chatRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: Groq API key", domain.ErrMissingAPIKey)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrChatAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Warnf("completion failed: status %d, body: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("%w: status %d", domain.ErrChatAPIFailure, resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", domain.ErrChatAPIFailure)
	}

	return completion.Choices[0].Message.Content, nil
}
