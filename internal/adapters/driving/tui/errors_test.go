package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrMissingAskService(t *testing.T) {
	assert.EqualError(t, ErrMissingAskService, "tui: ask service is required")
}

func TestErrInvalidPorts(t *testing.T) {
	assert.EqualError(t, ErrInvalidPorts, "tui: invalid ports configuration")
}
