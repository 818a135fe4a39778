package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	assert.Equal(t, English, For("").Lang)
	assert.Equal(t, English, For("de").Lang)
	assert.Equal(t, Japanese, For("ja").Lang)
	assert.Equal(t, Japanese, For(" JA ").Lang)
}

func TestRank(t *testing.T) {
	ja := For(Japanese)
	assert.Equal(t, "ゴールド2", ja.Rank("Gold 2"))
	assert.Equal(t, "レディアント", ja.Rank("Radiant"))
	assert.Equal(t, "Mythic 9", ja.Rank("Mythic 9"), "unknown tiers pass through")
	assert.Equal(t, "N/A", ja.Rank(""))

	en := For(English)
	assert.Equal(t, "Gold 2", en.Rank("Gold 2"))
}
