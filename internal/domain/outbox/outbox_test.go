package outbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusFailed, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusPending, true},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusFailed, StatusPending, false},
		{StatusFailed, StatusProcessing, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}
