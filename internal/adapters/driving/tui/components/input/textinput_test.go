package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionInput_Defaults(t *testing.T) {
	qi := NewQuestionInput(nil)

	assert.True(t, qi.Focused())
	assert.Empty(t, qi.Value())
	assert.Equal(t, 60, qi.Width())
}

func TestQuestionInput_SetValue(t *testing.T) {
	qi := NewQuestionInput(nil)

	qi.SetValue("When is the meeting?")

	assert.Equal(t, "When is the meeting?", qi.Value())
}

func TestQuestionInput_Reset(t *testing.T) {
	qi := NewQuestionInput(nil)
	qi.SetValue("something")

	qi.Reset()

	assert.Empty(t, qi.Value())
}

func TestQuestionInput_TypingUpdatesValue(t *testing.T) {
	qi := NewQuestionInput(nil)

	qi, _ = qi.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	assert.Equal(t, "hi", qi.Value())
}

func TestQuestionInput_FocusBlur(t *testing.T) {
	qi := NewQuestionInput(nil)

	qi.Blur()
	assert.False(t, qi.Focused())

	cmd := qi.Focus()
	assert.True(t, qi.Focused())
	require.NotNil(t, cmd)
}

func TestQuestionInput_SetWidth(t *testing.T) {
	qi := NewQuestionInput(nil)

	qi.SetWidth(100)
	assert.Equal(t, 100, qi.Width())

	// Very narrow terminals keep a usable minimum
	qi.SetWidth(10)
	assert.Equal(t, 10, qi.Width())
}

func TestQuestionInput_ViewContainsPrompt(t *testing.T) {
	qi := NewQuestionInput(nil)

	assert.Contains(t, qi.View(), "?")
}
