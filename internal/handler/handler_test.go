package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/handler"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Manual Mocks ---

// MockExtractionService
type MockExtractionService struct {
	ExtractFunc func(ctx context.Context, doc domain.Document) (string, error)
}

func (m *MockExtractionService) Extract(ctx context.Context, doc domain.Document) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, doc)
	}
	panic("MockExtractionService.ExtractFunc not implemented")
}

// MockQuizService
type MockQuizService struct {
	GenerateQuizFunc func(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}

func setupApp(extraction *MockExtractionService, quiz *MockQuizService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/health", handler.Health)
	handler.RegisterRoutes(app, handler.NewDocumentHandler(extraction), handler.NewQuizHandler(quiz), "")
	return app
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse_document", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestDocumentHandler_ParseDocument(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got domain.Document
		extraction := &MockExtractionService{
			ExtractFunc: func(ctx context.Context, doc domain.Document) (string, error) {
				got = doc
				return "Hello world", nil
			},
		}
		app := setupApp(extraction, &MockQuizService{})

		resp, err := app.Test(multipartRequest(t, "file", "notes.txt", []byte("Hello world")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out dto.ParseDocumentResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "Hello world", out.Text)
		assert.Equal(t, "notes.txt", got.Filename)
		assert.Equal(t, []byte("Hello world"), got.Data)
	})

	t.Run("missing file field", func(t *testing.T) {
		app := setupApp(&MockExtractionService{}, &MockQuizService{})

		resp, err := app.Test(multipartRequest(t, "document", "notes.txt", []byte("x")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		out := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeValidation), out.Code)
		assert.Equal(t, "file is required", out.Detail)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		extraction := &MockExtractionService{
			ExtractFunc: func(ctx context.Context, doc domain.Document) (string, error) {
				return "", domain.NewUnsupportedFormatError(doc.Ext())
			},
		}
		app := setupApp(extraction, &MockQuizService{})

		resp, err := app.Test(multipartRequest(t, "file", "slides.pptx", []byte("x")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		out := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeUnsupportedFormat), out.Code)
		assert.Equal(t, "Unsupported file type: .pptx", out.Detail)
		assert.Equal(t, http.StatusBadRequest, out.Status)
	})

	t.Run("processing failure", func(t *testing.T) {
		extraction := &MockExtractionService{
			ExtractFunc: func(ctx context.Context, doc domain.Document) (string, error) {
				return "", domain.NewProcessingError(doc.Filename, errors.New("zip: not a valid zip file"))
			},
		}
		app := setupApp(extraction, &MockQuizService{})

		resp, err := app.Test(multipartRequest(t, "file", "report.docx", []byte("garbage")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		out := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeProcessing), out.Code)
		assert.Contains(t, out.Detail, "zip: not a valid zip file")
	})
}

func TestQuizHandler_GenerateQuiz(t *testing.T) {
	sample := domain.Quiz{
		{
			Question: "What temperature does water boil at sea level?",
			Choices:  map[string]string{"A": "90°C", "B": "100°C", "C": "110°C", "D": "120°C"},
			Correct:  "B",
		},
	}

	t.Run("defaults applied", func(t *testing.T) {
		var got domain.QuizRequest
		quiz := &MockQuizService{
			GenerateQuizFunc: func(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
				got = req
				return sample, nil
			},
		}
		app := setupApp(&MockExtractionService{}, quiz)

		resp, err := app.Test(jsonRequest("/generate_quiz", `{"text": "Water boils at 100 degrees Celsius at sea level."}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		assert.Equal(t, "Water boils at 100 degrees Celsius at sea level.", got.Text)
		assert.Equal(t, domain.DefaultModel, got.Model)
		assert.InDelta(t, domain.DefaultTemperature, got.Temperature, 1e-9)
		assert.Equal(t, domain.DefaultMaxTokens, got.MaxTokens)

		var out []dto.QuizQuestionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out, 1)
		assert.Equal(t, "B", out[0].Correct)
		assert.Equal(t, "100°C", out[0].Choices["B"])
	})

	t.Run("explicit parameters", func(t *testing.T) {
		var got domain.QuizRequest
		quiz := &MockQuizService{
			GenerateQuizFunc: func(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
				got = req
				return sample, nil
			},
		}
		app := setupApp(&MockExtractionService{}, quiz)

		resp, err := app.Test(jsonRequest("/generate_quiz",
			`{"text": "t", "model": "gpt-4o", "temperature": 0, "max_tokens": 200}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "gpt-4o", got.Model)
		assert.Zero(t, got.Temperature)
		assert.Equal(t, 200, got.MaxTokens)
	})

	t.Run("empty text rejected before the service", func(t *testing.T) {
		app := setupApp(&MockExtractionService{}, &MockQuizService{})

		resp, err := app.Test(jsonRequest("/generate_quiz", `{"text": "   "}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		out := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeValidation), out.Code)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, "text", out.Errors[0].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		app := setupApp(&MockExtractionService{}, &MockQuizService{})

		resp, err := app.Test(jsonRequest("/generate_quiz", `{"text": `))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(domain.CodeInvalidInput), decodeError(t, resp).Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		quiz := &MockQuizService{
			GenerateQuizFunc: func(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
				return nil, domain.NewProviderError(errors.New("429 rate limited"))
			},
		}
		app := setupApp(&MockExtractionService{}, quiz)

		resp, err := app.Test(jsonRequest("/generate_quiz", `{"text": "t"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		out := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeProviderError), out.Code)
		assert.Contains(t, out.Detail, "429 rate limited")
	})

	t.Run("invalid model output", func(t *testing.T) {
		quiz := &MockQuizService{
			GenerateQuizFunc: func(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
				return nil, domain.NewInvalidModelOutputError(errors.New("unexpected end of JSON input"))
			},
		}
		app := setupApp(&MockExtractionService{}, quiz)

		resp, err := app.Test(jsonRequest("/generate_quiz", `{"text": "t"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Invalid JSON generated by AI", decodeError(t, resp).Detail)
	})
}

func TestHealth(t *testing.T) {
	app := setupApp(&MockExtractionService{}, &MockQuizService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
