package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	now := time.Date(2018, 7, 1, 12, 0, 0, 0, time.UTC)
	c := newMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	t.Run("Miss", func(t *testing.T) {
		_, ok := c.get("http://a")
		assert.False(t, ok)
	})

	t.Run("HitWithinTTL", func(t *testing.T) {
		c.set("http://a", []byte(`{}`))
		now = now.Add(30 * time.Second)
		body, ok := c.get("http://a")
		assert.True(t, ok)
		assert.Equal(t, []byte(`{}`), body)
	})

	t.Run("Expired", func(t *testing.T) {
		now = now.Add(time.Minute)
		_, ok := c.get("http://a")
		assert.False(t, ok)
	})

	t.Run("Flush", func(t *testing.T) {
		c.set("http://b", []byte(`[]`))
		assert.Equal(t, 2, c.len())
		c.flush()
		assert.Equal(t, 0, c.len())
	})
}

func TestMemoryCache_Disabled(t *testing.T) {
	c := newMemoryCache(0)
	c.set("http://a", []byte(`{}`))
	_, ok := c.get("http://a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.len())
}
