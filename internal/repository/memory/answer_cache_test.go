package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnswerCacheRoundTrip(t *testing.T) {
	c := NewAnswerCache(time.Minute, 10)

	c.Put("user1", "proj1", "How do I reset my password?", "Use the reset link.")

	got, ok := c.Get("user1", "proj1", "How do I reset my password?")
	assert.True(t, ok)
	assert.Equal(t, "Use the reset link.", got)

	// Question matching is case- and whitespace-insensitive.
	got, ok = c.Get("user1", "proj1", "  how do i reset   my password?  ")
	assert.True(t, ok)
	assert.Equal(t, "Use the reset link.", got)

	// Different scope or identity never shares entries.
	_, ok = c.Get("user1", "proj2", "How do I reset my password?")
	assert.False(t, ok)
	_, ok = c.Get("user2", "proj1", "How do I reset my password?")
	assert.False(t, ok)
}

func TestAnswerCacheTTLExpiry(t *testing.T) {
	c := NewAnswerCache(20*time.Millisecond, 10)

	c.Put("user1", "proj1", "q", "a")
	_, ok := c.Get("user1", "proj1", "q")
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get("user1", "proj1", "q")
	assert.False(t, ok)
	// The recency index is cleaned up lazily on the miss.
	assert.Equal(t, 0, c.Len())
}

func TestAnswerCacheLRUEviction(t *testing.T) {
	c := NewAnswerCache(time.Minute, 3)

	for i := 0; i < 3; i++ {
		c.Put("user1", "proj1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	// Touch q0 so q1 becomes the eviction candidate.
	_, ok := c.Get("user1", "proj1", "q0")
	assert.True(t, ok)

	c.Put("user1", "proj1", "q3", "a3")

	_, ok = c.Get("user1", "proj1", "q1")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("user1", "proj1", "q0")
	assert.True(t, ok)
	_, ok = c.Get("user1", "proj1", "q3")
	assert.True(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestAnswerCacheInvalidateScope(t *testing.T) {
	c := NewAnswerCache(time.Minute, 10)

	c.Put("user1", "proj1", "q1", "a1")
	c.Put("user1", "proj1", "q2", "a2")
	c.Put("user1", "proj2", "q1", "a1")
	c.Put("user2", "proj1", "q1", "a1")

	c.InvalidateScope("user1", "proj1")

	_, ok := c.Get("user1", "proj1", "q1")
	assert.False(t, ok)
	_, ok = c.Get("user1", "proj1", "q2")
	assert.False(t, ok)

	// Other scopes and identities survive.
	_, ok = c.Get("user1", "proj2", "q1")
	assert.True(t, ok)
	_, ok = c.Get("user2", "proj1", "q1")
	assert.True(t, ok)
}
