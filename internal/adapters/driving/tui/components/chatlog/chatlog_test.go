package chatlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestNewLog_Empty(t *testing.T) {
	log := NewLog(nil)

	assert.Zero(t, log.Len())
	assert.Empty(t, log.Entries())
}

func TestLog_AppendEntry(t *testing.T) {
	log := NewLog(nil)
	log.SetDimensions(80, 20)

	log.Append(Entry{Question: "When is the meeting?", Answer: "Thursday."})

	require.Equal(t, 1, log.Len())
	assert.Contains(t, log.View(), "When is the meeting?")
	assert.Contains(t, log.View(), "Thursday.")
}

func TestLog_RendersReferences(t *testing.T) {
	log := NewLog(nil)
	log.SetDimensions(80, 20)

	log.Append(Entry{
		Question: "q",
		Answer:   "a",
		References: []domain.Reference{
			{Filename: "notes.txt"},
			{Filename: "agenda.md"},
		},
	})

	assert.Contains(t, log.View(), "Sources: notes.txt, agenda.md")
}

func TestLog_RendersError(t *testing.T) {
	log := NewLog(nil)
	log.SetDimensions(80, 20)

	log.Append(Entry{Question: "q", Err: errors.New("pipeline failed")})

	assert.Contains(t, log.View(), "pipeline failed")
}

func TestLog_SetEntriesReplaces(t *testing.T) {
	log := NewLog(nil)
	log.SetDimensions(80, 20)
	log.Append(Entry{Question: "old"})

	log.SetEntries([]Entry{{Question: "first"}, {Question: "second"}})

	require.Equal(t, 2, log.Len())
	assert.Equal(t, "first", log.Entries()[0].Question)
}

func TestLog_SetDimensions(t *testing.T) {
	log := NewLog(nil)

	log.SetDimensions(120, 40)

	assert.Equal(t, 120, log.width)
	assert.Equal(t, 40, log.height)
}
