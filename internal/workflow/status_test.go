package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "APPROVED", "REJECTED"} {
		got, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("pending")
	assert.Error(t, err, "statuses are case sensitive")
	_, err = ParseStatus("DONE")
	assert.Error(t, err)
}

func TestParseDecision(t *testing.T) {
	_, err := ParseDecision("PENDING")
	assert.Error(t, err, "PENDING is not a decision")

	d, err := ParseDecision("APPROVED")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, d)

	d, err = ParseDecision("REJECTED")
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, d)
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))

	// Terminal states never move again
	assert.False(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusApproved.CanTransitionTo(StatusPending))
	assert.False(t, StatusRejected.CanTransitionTo(StatusApproved))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}
