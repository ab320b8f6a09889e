package analysis

import (
	"sort"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// ClassifyTone counts emotion lexicon hits per label. Labels with hits are
// returned by count descending, ties alphabetical. Without hits the result
// is a single neutral emotion with count zero.
func ClassifyTone(doc domain.Document, lex *Lexicons) []domain.Emotion {
	if lex == nil {
		lex = DefaultLexicons()
	}
	counts := make(map[domain.EmotionLabel]int)
	for _, tok := range doc.Tokens {
		for _, label := range lex.Emotions(tok.Text) {
			counts[label]++
		}
	}
	if len(counts) == 0 {
		return []domain.Emotion{{Label: domain.EmotionNeutral, Count: 0}}
	}

	out := make([]domain.Emotion, 0, len(counts))
	for label, n := range counts {
		out = append(out, domain.Emotion{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
