package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Stop()

	id := s.Create(true)
	assert.NotEmpty(t, id)

	sess, ok := s.Get(id)
	assert.True(t, ok)
	assert.True(t, sess.IsAdmin)

	other := s.Create(true)
	assert.NotEqual(t, id, other)
}

func TestGetUnknown(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Stop()

	_, ok := s.Get("no-such-session")
	assert.False(t, ok)
}

func TestDestroy(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Stop()

	id := s.Create(true)
	s.Destroy(id)

	_, ok := s.Get(id)
	assert.False(t, ok)

	// Destroying an unknown id is a no-op.
	s.Destroy(id)
}

func TestExpiry(t *testing.T) {
	s := NewStore(30 * time.Millisecond)
	defer s.Stop()

	id := s.Create(true)

	_, ok := s.Get(id)
	assert.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = s.Get(id)
	assert.False(t, ok)
}
