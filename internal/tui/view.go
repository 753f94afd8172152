package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/session"
)

const previewLines = 15

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Doc Quiz") + "  " + labelStyle.Render(m.title()) + "\n\n")

	switch m.screen {
	case screenFile:
		b.WriteString(m.renderFile())
	case screenText:
		b.WriteString(m.renderText())
	case screenParams:
		b.WriteString(m.renderParams())
	case screenQuiz:
		b.WriteString(m.renderQuiz())
	case screenResults:
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(busyStyle.Render("Working...") + "\n")
	}
	if m.errLine != "" {
		b.WriteString(errorStyle.Render(m.errLine) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render(m.hints()))
	return b.String()
}

func (m Model) title() string {
	switch m.screen {
	case screenFile:
		return "Upload"
	case screenText:
		return "Extracted text"
	case screenParams:
		return "Generation settings"
	case screenQuiz:
		return "Quiz"
	case screenResults:
		return "Results"
	}
	return ""
}

func (m Model) hints() string {
	switch m.screen {
	case screenFile:
		return "enter upload • esc back • ctrl+c quit"
	case screenText:
		return "enter settings • u new file • q quit"
	case screenParams:
		return "↑/↓ temperature • pgup/pgdn max tokens • enter generate • esc back"
	case screenQuiz:
		return "↑/↓ question • a-d answer • enter check • r regenerate • u new file • q quit"
	case screenResults:
		return "enter back to quiz • r regenerate • u new file • q quit"
	}
	return ""
}

func (m Model) renderFile() string {
	return labelStyle.Render("Document (pdf, docx, txt, html)") + "\n" + m.path.View() + "\n"
}

func (m Model) renderText() string {
	text := m.sess.Text()
	lines := strings.Split(text, "\n")
	more := ""
	if len(lines) > previewLines {
		more = fmt.Sprintf("\n… %d more lines", len(lines)-previewLines)
		lines = lines[:previewLines]
	}

	card := cardStyle
	if m.width > 4 {
		card = card.Width(m.width - 2)
	}
	header := labelStyle.Render(fmt.Sprintf("%s · %d characters", m.sess.Filename(), len([]rune(text))))
	return header + "\n" + card.Render(bodyStyle.Render(strings.Join(lines, "\n"))+hintStyle.Render(more)) + "\n"
}

func (m Model) renderParams() string {
	p := m.sess.Params()
	rows := []string{
		labelStyle.Render("Model") + "\n" + m.model.View(),
		labelStyle.Render("Temperature ") + bodyStyle.Render(fmt.Sprintf("%.1f", p.Temperature)) +
			hintStyle.Render(fmt.Sprintf("  (%.1f-%.1f)", session.MinTemperature, session.MaxTemperature)),
		labelStyle.Render("Max tokens  ") + bodyStyle.Render(fmt.Sprintf("%d", p.MaxTokens)) +
			hintStyle.Render(fmt.Sprintf("  (%d-%d)", session.MinMaxTokens, session.MaxMaxTokens)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m Model) renderQuiz() string {
	quiz := m.sess.Quiz()
	if len(quiz) == 0 {
		return bodyStyle.Render("The model returned no questions. Press r to try again.") + "\n"
	}

	answered := 0
	for i := range quiz {
		if m.sess.Selection(i) != "" {
			answered++
		}
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Question %d of %d · %d answered", m.cursor+1, len(quiz), answered)) + "\n\n")
	b.WriteString(renderQuestion(quiz[m.cursor], m.sess.Selection(m.cursor)))
	return b.String()
}

func renderQuestion(q domain.QuizQuestion, selected string) string {
	var b strings.Builder
	b.WriteString(bodyStyle.Bold(true).Render(q.Question) + "\n\n")
	for _, label := range q.Labels() {
		prefix := "  "
		style := bodyStyle
		if label == selected {
			prefix = "▸ "
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s)  %s", prefix, label, q.Choices[label])) + "\n")
	}
	return b.String()
}

func (m Model) renderResults() string {
	score, ok := m.sess.LastScore()
	if !ok {
		return ""
	}
	quiz := m.sess.Quiz()

	var b strings.Builder
	for i, r := range score.Results {
		question := ""
		if i < len(quiz) {
			question = quiz[i].Question
		}
		if r.OK {
			b.WriteString(correctStyle.Render("✓ ") + bodyStyle.Render(question) + "\n")
			continue
		}
		selected := r.Selected
		if selected == "" {
			selected = "none"
		}
		b.WriteString(incorrectStyle.Render("✗ ") + bodyStyle.Render(question) + "\n")
		b.WriteString(hintStyle.Render(fmt.Sprintf("    your answer: %s · correct: %s", selected, r.Correct)) + "\n")
	}
	b.WriteString("\n" + titleStyle.Render(fmt.Sprintf("Score: %d/%d", score.Correct, score.Total)) + "\n")
	return b.String()
}
