package service

import (
	"strings"

	"github.com/agnivade/levenshtein"
	bip39 "github.com/tyler-smith/go-bip39"
)

// maxHintDistance bounds how far a typed word may be from a suggestion.
const maxHintDistance = 2

// WordHint flags a phrase word that is not in the recovery wordlist.
type WordHint struct {
	Position   int
	Word       string
	Suggestion string
}

// PhraseHints lists unknown words in phrase with the closest wordlist entry.
// Hints are advisory and never block a submission.
func PhraseHints(phrase string) []WordHint {
	var hints []WordHint
	for i, w := range strings.Fields(strings.ToLower(phrase)) {
		if _, ok := bip39.GetWordIndex(w); ok {
			continue
		}
		hints = append(hints, WordHint{Position: i + 1, Word: w, Suggestion: suggestWord(w)})
	}
	return hints
}

func suggestWord(w string) string {
	best, bestDist := "", maxHintDistance+1
	for _, candidate := range bip39.GetWordList() {
		d := levenshtein.ComputeDistance(w, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
