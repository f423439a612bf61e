package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchSpoiler(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		m, ok := MatchSpoiler([]byte(">!hidden!< and more"))
		require.True(t, ok)
		assert.Equal(t, 0, m.Start)
		assert.Equal(t, 10, m.End)
		assert.Equal(t, "hidden", string(m.Spoiler))
		assert.Equal(t, 2, m.SpoilerOffset)
		assert.Nil(t, m.Topic)
	})
	t.Run("labeled", func(t *testing.T) {
		m, ok := MatchSpoiler([]byte("[topic] >!hidden!< rest"))
		require.True(t, ok)
		assert.Equal(t, 18, m.End)
		assert.Equal(t, "hidden", string(m.Spoiler))
		assert.Equal(t, 10, m.SpoilerOffset)
		assert.Equal(t, "topic", string(m.Topic))
	})
	t.Run("one space of padding is trimmed on each side", func(t *testing.T) {
		m, ok := MatchSpoiler([]byte(">! hidden !<"))
		require.True(t, ok)
		assert.Equal(t, "hidden", string(m.Spoiler))
		assert.Equal(t, 3, m.SpoilerOffset)
	})
	t.Run("ends at the first end sentinel", func(t *testing.T) {
		m, ok := MatchSpoiler([]byte(">!one >!two!< three!<"))
		require.True(t, ok)
		assert.Equal(t, "one >!two", string(m.Spoiler))
		assert.Equal(t, 13, m.End)
	})
	t.Run("empty hidden text", func(t *testing.T) {
		m, ok := MatchSpoiler([]byte(">!!<"))
		require.True(t, ok)
		assert.Empty(t, m.Spoiler)
		assert.Equal(t, 4, m.End)
	})
	t.Run("empty label", func(t *testing.T) {
		m, ok := MatchSpoiler([]byte("[] >!x!<"))
		require.True(t, ok)
		assert.Equal(t, "x", string(m.Spoiler))
		assert.Empty(t, m.Topic)
		assert.Equal(t, 8, m.End)
	})

	misses := []string{
		"[topic]>!hidden!<", // label needs exactly one separating space
		"[topic]  >!hidden!<",
		"[topic] hidden!<",
		">!never closed",
		">!across\nlines!<",
		"look >!hidden!<", // must start at the cursor
		"!<hidden>!",
		"",
	}
	for _, miss := range misses {
		t.Run("miss "+miss, func(t *testing.T) {
			_, ok := MatchSpoiler([]byte(miss))
			assert.False(t, ok)
		})
	}
}
