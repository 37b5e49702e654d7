// Package chatlog provides the scrolling conversation transcript.
package chatlog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// Entry is one question/answer exchange in the transcript.
type Entry struct {
	// Question is the question as asked.
	Question string

	// Answer is the answer text shown under the question.
	Answer string

	// References are the source documents the answer cited.
	References []domain.Reference

	// Err is set when the pipeline failed for this question.
	Err error
}

// Log renders the conversation inside a scrollable viewport.
type Log struct {
	viewport viewport.Model
	styles   *styles.Styles
	entries  []Entry
	width    int
	height   int
}

// NewLog creates an empty conversation log.
func NewLog(s *styles.Styles) *Log {
	if s == nil {
		s = styles.DefaultStyles()
	}

	vp := viewport.New(80, 20)

	return &Log{
		viewport: vp,
		styles:   s,
		width:    80,
		height:   20,
	}
}

// Init initialises the log.
func (l *Log) Init() tea.Cmd {
	return nil
}

// Update handles scrolling messages.
func (l *Log) Update(msg tea.Msg) (*Log, tea.Cmd) {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

// View renders the transcript.
func (l *Log) View() string {
	return l.viewport.View()
}

// Append adds an entry and scrolls to the bottom.
func (l *Log) Append(entry Entry) {
	l.entries = append(l.entries, entry)
	l.refresh()
	l.viewport.GotoBottom()
}

// SetEntries replaces the transcript, used when loading history.
func (l *Log) SetEntries(entries []Entry) {
	l.entries = entries
	l.refresh()
	l.viewport.GotoBottom()
}

// Entries returns the current transcript.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// SetDimensions resizes the viewport.
func (l *Log) SetDimensions(width, height int) {
	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
}

// refresh re-renders the transcript into the viewport.
func (l *Log) refresh() {
	var b strings.Builder
	for i := range l.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l.renderEntry(&l.entries[i]))
	}
	l.viewport.SetContent(b.String())
}

// renderEntry renders one exchange.
func (l *Log) renderEntry(entry *Entry) string {
	var b strings.Builder

	b.WriteString(l.styles.Question.Render("You: "))
	b.WriteString(l.styles.Normal.Render(entry.Question))
	b.WriteString("\n")

	if entry.Err != nil {
		b.WriteString(l.styles.Error.Render(fmt.Sprintf("Error: %v", entry.Err)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(l.styles.Answer.Render(entry.Answer))
	b.WriteString("\n")

	if len(entry.References) > 0 {
		names := make([]string, 0, len(entry.References))
		for i := range entry.References {
			names = append(names, entry.References[i].Filename)
		}
		b.WriteString(l.styles.Muted.Render("Sources: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}
