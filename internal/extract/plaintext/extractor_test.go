package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
}

func TestSupportedExtensions(t *testing.T) {
	extractor := New()
	extensions := extractor.SupportedExtensions()

	require.NotEmpty(t, extensions)
	assert.Contains(t, extensions, ".txt")
	assert.Contains(t, extensions, ".csv")
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 5, extractor.Priority())
}

func TestExtract(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, "notes.txt", []byte("hello world\nline two"))
	require.NoError(t, err)
	assert.Equal(t, "hello world\nline two", text)
}

func TestExtract_NilData(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	_, err := extractor.Extract(ctx, "notes.txt", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_EmptyData(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, "empty.txt", []byte{})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
