package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// The dictionary uses specific words to avoid partial collisions
// (e.g., "he" inside "The").
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	dictionary := []string{"badger", "snake", "mushroom"}
	mod, err := NewModerator(dictionary, replacementChar)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		found    int
	}{
		{
			name:     "Simple word and space preservation",
			input:    "The badger is here",
			expected: "The ****** is here",
			found:    1,
		},
		{
			name:     "Multiple occurrences and preserved spacing",
			input:    "badger badger badger",
			expected: "****** ****** ******",
			found:    3,
		},
		{
			name:     "Leet speak and internal punctuation",
			input:    "Look at B.4.d.g.3r !",
			expected: "Look at ********** !",
			found:    1,
		},
		{
			name:     "Uppercase noise",
			input:    "S-N-A-K-E is loose",
			expected: "********* is loose",
			found:    1,
		},
		{
			name:     "Clean text untouched",
			input:    "nothing to see here",
			expected: "nothing to see here",
			found:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			censored, words := mod.Censor(tt.input)
			req.Equal(tt.expected, censored)
			req.Len(words, tt.found)
		})
	}
}

func TestModerator_NoiseOnlyWordListIsPassThrough(t *testing.T) {
	req := require.New(t)

	// Every entry folds to nothing; no automaton is built
	mod, err := NewModerator([]string{"---", "...", "  "}, replacementChar)
	req.NoError(err)

	censored, words := mod.Censor("badger snake mushroom")
	req.Equal("badger snake mushroom", censored)
	req.Empty(words)
}

func TestModerator_EmptyWordListIsPassThrough(t *testing.T) {
	req := require.New(t)

	mod, err := NewModerator(nil, replacementChar)
	req.NoError(err)

	censored, words := mod.Censor("badger snake mushroom")
	req.Equal("badger snake mushroom", censored)
	req.Empty(words)
}
