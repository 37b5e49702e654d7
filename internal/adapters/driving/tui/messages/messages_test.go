package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestAskCompleted_CarriesAnswer(t *testing.T) {
	msg := AskCompleted{
		Question: "When is the meeting?",
		Answer:   &domain.Answer{Text: "Thursday."},
	}

	assert.Equal(t, "When is the meeting?", msg.Question)
	assert.Equal(t, "Thursday.", msg.Answer.Text)
	assert.NoError(t, msg.Err)
}

func TestAskCompleted_CarriesError(t *testing.T) {
	msg := AskCompleted{Question: "q", Err: errors.New("boom")}

	assert.Error(t, msg.Err)
	assert.Nil(t, msg.Answer)
}

func TestPhaseChanged(t *testing.T) {
	msg := PhaseChanged{Phase: domain.AskPhaseRetrieving}

	assert.Equal(t, domain.AskPhaseRetrieving, msg.Phase)
}

func TestHistoryLoaded(t *testing.T) {
	msg := HistoryLoaded{Interactions: []domain.Interaction{{Question: "q"}}}

	assert.Len(t, msg.Interactions, 1)
	assert.NoError(t, msg.Err)
}
