package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(time.Hour)

	token, err := m.Create(7, "alice")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	sess, ok := m.Get(token)
	require.True(t, ok)
	assert.Equal(t, int64(7), sess.AccountID)
	assert.Equal(t, "alice", sess.Username)

	m.Delete(token)
	_, ok = m.Get(token)
	assert.False(t, ok)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(10 * time.Millisecond)

	token, err := m.Create(1, "bob")
	require.NoError(t, err)

	_, ok := m.Get(token)
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = m.Get(token)
	assert.False(t, ok)
}

func TestManagerUnknownToken(t *testing.T) {
	m := NewManager(time.Hour)

	_, ok := m.Get("")
	assert.False(t, ok)

	_, ok = m.Get("deadbeef")
	assert.False(t, ok)
}

func TestTokensAreUnique(t *testing.T) {
	m := NewManager(time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := m.Create(int64(i), "user")
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
