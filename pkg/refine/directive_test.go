package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioS6 reproduces scenario S6: empty input means reject, "yn" is
// an error, and "r 3" records action 3 for persistent rejection without
// itself rejecting the candidate.
func TestScenarioS6(t *testing.T) {
	d, err := ParseDirective("")
	require.NoError(t, err)
	assert.True(t, d.Reject)

	_, err = ParseDirective("yn")
	assert.Error(t, err)

	d, err = ParseDirective("r 3")
	require.NoError(t, err)
	assert.Equal(t, 3, d.ActionToRejectPersist)
	assert.False(t, d.Reject)
}

func TestAcceptIsParsed(t *testing.T) {
	d, err := ParseDirective("y")
	require.NoError(t, err)
	assert.True(t, d.Accept)
}

func TestTwoSpacesIsAnError(t *testing.T) {
	_, err := ParseDirective("yr 3 9")
	assert.Error(t, err)
}

func TestPersistentCommandRejection(t *testing.T) {
	d, err := ParseDirective("c")
	require.NoError(t, err)
	assert.True(t, d.RejectCommandPersistent)
}

func TestSessionRejectActionNumberTwo(t *testing.T) {
	d, err := ParseDirective("d 2")
	require.NoError(t, err)
	assert.Equal(t, 2, d.ActionToReject)
}

func TestMissingActionNumberIsAnError(t *testing.T) {
	_, err := ParseDirective("r")
	assert.Error(t, err)
}

func TestInvalidCharacterIsAnError(t *testing.T) {
	_, err := ParseDirective("z")
	assert.Error(t, err)
}

func TestInputIsCaseAndSpaceInsensitive(t *testing.T) {
	d, err := ParseDirective("  Y  ")
	require.NoError(t, err)
	assert.True(t, d.Accept)
}
