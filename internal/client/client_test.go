package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/parse_document", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "notes.txt", header.Filename)
		assert.Equal(t, "Hello world", string(data))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "Hello world"})
	}))
	t.Cleanup(srv.Close)

	text, err := New(srv.URL + "/").Extract(context.Background(), "notes.txt", []byte("Hello world"))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestClient_GenerateQuiz(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_quiz", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"question":"Q?","choices":{"A":"x","B":"y"},"correct":"B"}]`))
	}))
	t.Cleanup(srv.Close)

	quiz, err := New(srv.URL).GenerateQuiz(context.Background(), domain.QuizRequest{
		Text:        "some text",
		Model:       "gpt-4o-mini",
		Temperature: 0,
		MaxTokens:   1500,
	})
	require.NoError(t, err)
	require.Len(t, quiz, 1)
	assert.Equal(t, "B", quiz[0].Correct)

	assert.Equal(t, "some text", got["text"])
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Contains(t, got, "temperature")
	assert.InDelta(t, 0, got["temperature"], 1e-9)
	assert.InDelta(t, 1500, got["max_tokens"], 1e-9)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantDetail string
	}{
		{
			name:       "structured error",
			status:     http.StatusBadRequest,
			body:       `{"code":"UNSUPPORTED_FORMAT","detail":"Unsupported file type: .exe","status":400}`,
			wantCode:   "UNSUPPORTED_FORMAT",
			wantDetail: "Unsupported file type: .exe",
		},
		{
			name:       "detail only",
			status:     http.StatusInternalServerError,
			body:       `{"detail":"Invalid JSON generated by AI"}`,
			wantDetail: "Invalid JSON generated by AI",
		},
		{
			name:       "plain text",
			status:     http.StatusBadGateway,
			body:       "upstream down\n",
			wantDetail: "upstream down",
		},
		{
			name:       "empty body",
			status:     http.StatusServiceUnavailable,
			wantDetail: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := New(srv.URL).Extract(context.Background(), "a.exe", []byte("x"))
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).GenerateQuiz(context.Background(), domain.QuizRequest{Text: "x"})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())

	hc := &http.Client{}
	c := New("http://example.test/", WithHTTPClient(hc))
	assert.Equal(t, "http://example.test", c.BaseURL())
	assert.Same(t, hc, c.httpClient)
}
