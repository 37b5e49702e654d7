// Package status provides the status bar for the chat UI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/keymap"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateError    State = "error"
)

// Bar displays pipeline progress and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	phase   domain.AskPhase
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := b.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state or pipeline phase.
func (b *Bar) renderLeft() string {
	switch b.state {
	case StateThinking:
		if b.phase != "" {
			return b.styles.Muted.Render(phaseLabel(b.phase))
		}
		return b.styles.Muted.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
		}
		return b.styles.Error.Render("Error")
	case StateReady:
		return b.styles.Muted.Render("Ready")
	}
	return b.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// phaseLabel maps a pipeline phase to a short progress label.
func phaseLabel(phase domain.AskPhase) string {
	switch phase {
	case domain.AskPhaseEmbedding:
		return "Embedding question..."
	case domain.AskPhaseRetrieving:
		return "Searching your documents..."
	case domain.AskPhaseSynthesizing:
		return "Writing answer..."
	case domain.AskPhaseNoContext:
		return "Nothing relevant found..."
	case domain.AskPhaseLogging:
		return "Saving..."
	default:
		return "Thinking..."
	}
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetPhase sets the pipeline phase shown while thinking.
func (b *Bar) SetPhase(phase domain.AskPhase) {
	b.phase = phase
}

// Phase returns the current pipeline phase.
func (b *Bar) Phase() domain.AskPhase {
	return b.phase
}

// SetMessage sets a custom message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets the status bar to default state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.phase = ""
	b.message = ""
}
