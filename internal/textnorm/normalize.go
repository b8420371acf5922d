// Package textnorm converts raw utterance text into the canonical token
// form the intent classifier matches against.
package textnorm

import "strings"

// accented vowels preserved during normalization. Voice transcripts for
// Italian commands carry these routinely ("perplessità", "città").
const accentedVowels = "àèéìíòóùú"

// Tokens normalizes text into an ordered token sequence: trim,
// lowercase, replace every rune outside [a-z0-9] and the accented
// vowels with a space, then split on whitespace runs. Empty or
// whitespace-only input yields nil.
func Tokens(text string) []string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return nil
	}

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || strings.ContainsRune(accentedVowels, r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Fields(b.String())
}

// TokenSet returns the tokens of text as a membership set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
