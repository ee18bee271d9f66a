package conversation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("a", 100)))
}

func TestTruncateToTokens(t *testing.T) {
	text := strings.Repeat("a", 100)

	assert.Equal(t, "", TruncateToTokens(text, 0))
	assert.Equal(t, "", TruncateToTokens(text, -1))
	assert.Equal(t, text, TruncateToTokens(text, 25))
	assert.Equal(t, text, TruncateToTokens(text, 100))

	cut := TruncateToTokens(text, 5)
	assert.Len(t, cut, 20)
	assert.LessOrEqual(t, EstimateTokens(cut), 5)
}

func TestTruncateToTokensMultibyte(t *testing.T) {
	text := strings.Repeat("ä", 50)

	cut := TruncateToTokens(text, 5)
	assert.LessOrEqual(t, len(cut), 20)
	assert.True(t, strings.HasPrefix(text, cut))
}
