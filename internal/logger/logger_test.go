package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects logger output into a buffer for the test and
// restores the defaults afterwards.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestVerboseToggle(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestSilentUnlessVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("embedding %d chunks", 3)
	Info("ingested %s", "notes.txt")
	Warn("retry %d", 1)
	Section("Question Pipeline")

	assert.Empty(t, buf.String())
}

func TestVerboseOutput(t *testing.T) {
	buf := capture(t, true)

	Debug("embedding %d chunks", 3)
	Info("ingested %s", "notes.txt")
	Warn("retry %d", 1)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] embedding 3 chunks\n")
	assert.Contains(t, out, "[INFO] ingested notes.txt\n")
	assert.Contains(t, out, "[WARN] retry 1\n")
}

func TestSectionHeader(t *testing.T) {
	buf := capture(t, true)

	Section("Question Pipeline")

	assert.Equal(t, "\n=== Question Pipeline ===\n", buf.String())
}
