// Package moderation censors forbidden words in relayed text.
// Matching runs on a normalized view of the text (lower-cased, leet
// speak folded, punctuation and spacing stripped) so trivial
// obfuscation does not bypass the word list.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

// NewModerator builds the Aho-Corasick automaton from the word list.
// An empty list yields a pass-through moderator.
func NewModerator(words []string, replacement rune) (Moderator, error) {
	if len(words) == 0 {
		return Moderator{replacement: replacement}, nil
	}
	patterns := make([][]rune, 0, len(words))
	for _, w := range words {
		folded, _ := fold([]rune(w))
		if len(folded) == 0 {
			continue
		}
		patterns = append(patterns, folded)
	}
	// Entries made only of noise runes fold to nothing; a list that
	// yields no pattern degrades to pass-through rather than handing
	// the automaton an empty build.
	if len(patterns) == 0 {
		return Moderator{replacement: replacement}, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: m, replacement: replacement}, nil
}

// Censor replaces every matched span with the replacement rune,
// preserving the spacing and punctuation of the original text.
// It returns the censored text and the matched words.
func (m *Moderator) Censor(text string) (string, []string) {
	if m.matcher == nil {
		return text, nil
	}

	orig := []rune(text)
	norm, origIdx := fold(orig)
	if len(norm) == 0 {
		return text, nil
	}

	spans := m.matcher.MultiPatternSearch(norm, false)
	if len(spans) == 0 {
		return text, nil
	}

	found := make([]string, 0, len(spans))
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		found = append(found, string(span.Word))

		// Mask the original span, including any noise characters
		// sitting between the first and last matched rune.
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			orig[i] = m.replacement
		}
	}
	return string(orig), found
}

// fold lower-cases, maps leet speak back to letters, and drops noise
// runes. The second return value maps each kept rune back to its index
// in the input.
func fold(in []rune) ([]rune, []int) {
	out := make([]rune, 0, len(in))
	idx := make([]int, 0, len(in))
	for i, r := range in {
		switch r {
		case '4', '@':
			r = 'a'
		case '3':
			r = 'e'
		case '1', '!', '|':
			r = 'i'
		case '0':
			r = 'o'
		case '5', '$':
			r = 's'
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
		idx = append(idx, i)
	}
	return out, idx
}
