package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyToken(t *testing.T) {
	hash, err := HashToken("s3cret-kill-switch")
	require.NoError(t, err)

	assert.True(t, VerifyToken(hash, "s3cret-kill-switch"))
	assert.False(t, VerifyToken(hash, "wrong"))
	assert.False(t, VerifyToken(hash, ""))
}

func TestVerifyTokenDisabledWithoutHash(t *testing.T) {
	assert.False(t, VerifyToken("", "anything"))
}
