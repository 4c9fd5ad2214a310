package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	digest, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", digest)

	assert.True(t, CheckPassword(digest, "hunter22"))
	assert.False(t, CheckPassword(digest, "hunter23"))
	assert.False(t, CheckPassword("not-a-digest", "hunter22"))
}
