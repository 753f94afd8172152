// Package tui is the terminal front end of the quiz client. It renders a
// session.Session and turns key presses into session operations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"doc-quiz/internal/session"
)

const (
	temperatureStep = 0.1
	maxTokensStep   = 100
)

type screen int

const (
	screenFile screen = iota
	screenText
	screenParams
	screenQuiz
	screenResults
)

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	sess *session.Session

	screen  screen
	path    textinput.Model
	model   textinput.Model
	cursor  int
	busy    bool
	errLine string

	width  int
	height int
}

// New returns a model positioned on the file prompt.
func New(ctx context.Context, sess *session.Session) Model {
	path := textinput.New()
	path.Placeholder = "path/to/document.pdf"
	path.CharLimit = 1024
	path.Focus()

	model := textinput.New()
	model.Placeholder = sess.Params().Model
	model.CharLimit = 128
	model.SetValue(sess.Params().Model)

	return Model{
		ctx:   ctx,
		sess:  sess,
		path:  path,
		model: model,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case uploadDoneMsg:
		m.busy = false
		if msg.Err != nil {
			m.errLine = fmt.Sprintf("Upload failed: %v", msg.Err)
			return m, nil
		}
		m.errLine = ""
		m.screen = screenText
		m.path.Blur()
		return m, nil

	case generateDoneMsg:
		m.busy = false
		if msg.Err != nil {
			m.errLine = fmt.Sprintf("Quiz generation failed: %v", msg.Err)
			return m, nil
		}
		m.errLine = ""
		m.cursor = 0
		m.screen = screenQuiz
		m.model.Blur()
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.screen {
		case screenFile:
			return m.updateFile(msg)
		case screenText:
			return m.updateText(msg)
		case screenParams:
			return m.updateParams(msg)
		case screenQuiz:
			return m.updateQuiz(msg)
		case screenResults:
			return m.updateResults(msg)
		}
	}

	return m.updateInputs(msg)
}

// updateInputs forwards non-key messages such as cursor blinks to the
// focused input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenFile:
		m.path, cmd = m.path.Update(msg)
	case screenParams:
		m.model, cmd = m.model.Update(msg)
	}
	return m, cmd
}

func (m Model) updateFile(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.path.Value())
		if path == "" {
			m.errLine = "Enter the path of a PDF, DOCX, TXT or HTML file."
			return m, nil
		}
		m.busy = true
		m.errLine = ""
		return m, uploadCmd(m.ctx, m.sess, path)
	case "esc":
		if m.sess.State() != session.StateEmpty {
			m.screen = screenText
			m.path.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) updateText(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "g":
		m.screen = screenParams
		m.errLine = ""
		return m, m.model.Focus()
	case "u":
		m.screen = screenFile
		m.errLine = ""
		return m, m.path.Focus()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateParams(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	p := m.sess.Params()
	switch msg.String() {
	case "up":
		m.sess.SetTemperature(roundTenth(p.Temperature + temperatureStep))
		return m, nil
	case "down":
		m.sess.SetTemperature(roundTenth(p.Temperature - temperatureStep))
		return m, nil
	case "pgup":
		m.sess.SetMaxTokens(p.MaxTokens + maxTokensStep)
		return m, nil
	case "pgdown":
		m.sess.SetMaxTokens(p.MaxTokens - maxTokensStep)
		return m, nil
	case "enter":
		m.sess.SetModel(strings.TrimSpace(m.model.Value()))
		m.model.SetValue(m.sess.Params().Model)
		m.busy = true
		m.errLine = ""
		return m, generateCmd(m.ctx, m.sess)
	case "esc":
		m.model.Blur()
		m.screen = screenText
		if m.sess.State() == session.StateQuizReady || m.sess.State() == session.StateScored {
			m.screen = screenQuiz
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.model, cmd = m.model.Update(msg)
	return m, cmd
}

func (m Model) updateQuiz(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	n := len(m.sess.Quiz())
	key := msg.String()
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j", "tab":
		if m.cursor < n-1 {
			m.cursor++
		}
		return m, nil
	case "a", "b", "c", "d", "A", "B", "C", "D":
		if err := m.sess.Select(m.cursor, strings.ToUpper(key)); err != nil {
			m.errLine = selectError(err)
			return m, nil
		}
		m.errLine = ""
		if m.cursor < n-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if _, err := m.sess.Check(); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		m.errLine = ""
		m.screen = screenResults
		return m, nil
	case "r":
		m.screen = screenParams
		return m, m.model.Focus()
	case "u":
		m.screen = screenFile
		return m, m.path.Focus()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResults(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.screen = screenQuiz
		return m, nil
	case "r":
		m.screen = screenParams
		return m, m.model.Focus()
	case "u":
		m.screen = screenFile
		return m, m.path.Focus()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func uploadCmd(ctx context.Context, sess *session.Session, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadDoneMsg{Err: err}
		}
		name := filepath.Base(path)
		return uploadDoneMsg{Filename: name, Err: sess.Upload(ctx, name, data)}
	}
}

func generateCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return generateDoneMsg{Err: sess.Generate(ctx)}
	}
}

func selectError(err error) string {
	if errors.Is(err, session.ErrNoSuchLabel) {
		return "That choice is not offered for this question."
	}
	return err.Error()
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, sess *session.Session) error {
	p := tea.NewProgram(New(ctx, sess))
	_, err := p.Run()
	return err
}
