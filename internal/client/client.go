// Package client talks to the document and quiz HTTP endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

// DefaultBaseURL is where the server listens by default.
const DefaultBaseURL = "http://localhost:8000"

const defaultTimeout = 3 * time.Minute

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Code   string
	Detail string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Detail)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Detail)
}

// Client calls the extraction and quiz endpoints of one server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a client for the server at baseURL. An empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Extract uploads a document and returns its extracted text.
func (c *Client) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	var out dto.ParseDocumentResponse
	if err := c.do(ctx, "/parse_document", w.FormDataContentType(), &body, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// GenerateQuiz asks the server for a quiz over req.Text. Every parameter is
// sent explicitly, so server defaults never apply.
func (c *Client) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
	payload, err := json.Marshal(dto.GenerateQuizRequest{
		Text:        req.Text,
		Model:       &req.Model,
		Temperature: &req.Temperature,
		MaxTokens:   &req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("encode quiz request: %w", err)
	}

	var out domain.Quiz
	if err := c.do(ctx, "/generate_quiz", "application/json", bytes.NewReader(payload), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Get().Error("Request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	logger.Get().Debug("Response received",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

// decodeAPIError reads the server's error body, falling back to the raw
// text when it is not the expected JSON.
func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status}

	var body dto.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		apiErr.Code = body.Code
		apiErr.Detail = body.Detail
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(data))
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(status)
	}
	return apiErr
}
