// Package session holds the client-side workflow state: the uploaded text,
// generation parameters, the current quiz, the user's answers and the score.
// It knows nothing about how it is rendered.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"doc-quiz/internal/domain"
)

const (
	MinTemperature = 0.0
	MaxTemperature = 1.0
	MinMaxTokens   = 100
	MaxMaxTokens   = 3000
)

var (
	ErrNoText      = errors.New("no document text: upload a document first")
	ErrNoQuiz      = errors.New("no quiz: generate one first")
	ErrNoQuestion  = errors.New("question index out of range")
	ErrNoSuchLabel = errors.New("choice label not offered by the question")
)

// Backend is the pair of remote operations a session drives.
type Backend interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error)
}

// State is the position of a session in its workflow.
type State int

const (
	StateEmpty State = iota
	StateTextReady
	StateQuizReady
	StateScored
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateTextReady:
		return "text ready"
	case StateQuizReady:
		return "quiz ready"
	case StateScored:
		return "scored"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Params are the generation parameters sent with every quiz request.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultParams returns the parameters a new session starts with.
func DefaultParams() Params {
	return Params{
		Model:       domain.DefaultModel,
		Temperature: domain.DefaultTemperature,
		MaxTokens:   domain.DefaultMaxTokens,
	}
}

// Result is the outcome for one question. Selected is "" when unanswered.
type Result struct {
	Selected string
	Correct  string
	OK       bool
}

// Score is the outcome of a check.
type Score struct {
	Results []Result
	Correct int
	Total   int
}

// Session is safe for concurrent use. Backend calls run without the lock
// held; results are applied when they arrive.
type Session struct {
	backend Backend

	mu         sync.RWMutex
	state      State
	filename   string
	text       string
	params     Params
	quiz       domain.Quiz
	selections []string
	score      *Score
}

// New returns an empty session with default parameters.
func New(backend Backend) *Session {
	return &Session{
		backend: backend,
		params:  DefaultParams(),
	}
}

// Upload extracts text from a document. On success the text replaces any
// previous one and the quiz is discarded; on failure nothing changes.
func (s *Session) Upload(ctx context.Context, filename string, data []byte) error {
	text, err := s.backend.Extract(ctx, filename, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
	s.text = text
	s.quiz = nil
	s.selections = nil
	s.score = nil
	s.state = StateTextReady
	return nil
}

// Generate requests a quiz for the current text. On success the quiz and
// all selections are replaced; on failure the previous quiz is kept.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.RLock()
	text, params := s.text, s.params
	s.mu.RUnlock()

	if text == "" {
		return ErrNoText
	}

	quiz, err := s.backend.GenerateQuiz(ctx, domain.QuizRequest{
		Text:        text,
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = quiz
	s.selections = make([]string, len(quiz))
	s.score = nil
	s.state = StateQuizReady
	return nil
}

// SetModel sets the model name; an empty name restores the default.
func (s *Session) SetModel(model string) {
	if model == "" {
		model = domain.DefaultModel
	}
	s.mu.Lock()
	s.params.Model = model
	s.mu.Unlock()
}

// SetTemperature sets the sampling temperature, clamped to [0, 1].
func (s *Session) SetTemperature(t float64) {
	s.mu.Lock()
	s.params.Temperature = min(max(t, MinTemperature), MaxTemperature)
	s.mu.Unlock()
}

// SetMaxTokens sets the completion budget, clamped to [100, 3000].
func (s *Session) SetMaxTokens(n int) {
	s.mu.Lock()
	s.params.MaxTokens = min(max(n, MinMaxTokens), MaxMaxTokens)
	s.mu.Unlock()
}

// Select records the answer to question i, replacing any earlier one.
// Selecting after a check invalidates the score.
func (s *Session) Select(i int, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateQuizReady && s.state != StateScored {
		return ErrNoQuiz
	}
	if i < 0 || i >= len(s.quiz) {
		return fmt.Errorf("%w: %d", ErrNoQuestion, i)
	}
	if _, ok := s.quiz[i].Choices[label]; !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchLabel, label)
	}

	s.selections[i] = label
	s.score = nil
	s.state = StateQuizReady
	return nil
}

// Check scores the current selections. Unanswered questions count as
// incorrect. The quiz itself is never modified.
func (s *Session) Check() (Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateQuizReady && s.state != StateScored {
		return Score{}, ErrNoQuiz
	}

	score := Score{
		Results: make([]Result, len(s.quiz)),
		Total:   len(s.quiz),
	}
	for i, q := range s.quiz {
		r := Result{Selected: s.selections[i], Correct: q.Correct}
		r.OK = r.Selected != "" && r.Selected == q.Correct
		if r.OK {
			score.Correct++
		}
		score.Results[i] = r
	}

	s.score = &score
	s.state = StateScored
	return score, nil
}

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Filename returns the name of the last successfully uploaded document.
func (s *Session) Filename() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filename
}

// Text returns the current extracted text.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Params returns the current generation parameters.
func (s *Session) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Quiz returns a copy of the current quiz.
func (s *Session) Quiz() domain.Quiz {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Quiz, len(s.quiz))
	copy(out, s.quiz)
	return out
}

// Selection returns the answer recorded for question i, or "".
func (s *Session) Selection(i int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.selections) {
		return ""
	}
	return s.selections[i]
}

// LastScore returns the score of the most recent check still valid.
func (s *Session) LastScore() (Score, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.score == nil {
		return Score{}, false
	}
	return *s.score, true
}
