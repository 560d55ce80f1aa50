package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "hello world", "hello world", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "hello", "", 0.0},
		{"other empty", "", "hello", 0.0},
		{"completely different same length", "aaaa", "bbbb", 0.0},
		{"one of four changed", "abcd", "abcx", 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 0.001)
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"short", "a much longer replacement sentence"},
		{"The quick brown fox.", "A quick brown fox!"},
		{"日本語テキスト", "日本語の文章"},
	}
	for _, pair := range pairs {
		s := Similarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestChangeRatio(t *testing.T) {
	assert.InDelta(t, 0.0, ChangeRatio("same text", "same text"), 0.001)
	assert.InDelta(t, 0.25, ChangeRatio("abcd", "abcx"), 0.001)
	assert.InDelta(t, 1.0, ChangeRatio("original", ""), 0.001)
}
