package analysis

import (
	"sort"
	"strings"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// candidatePhrases returns the maximal runs of non-stop tokens. A run ends
// at a stopword, at clause punctuation or at the end of a sentence.
func candidatePhrases(doc domain.Document) [][]domain.Token {
	var phrases [][]domain.Token
	var cur []domain.Token
	flush := func() {
		if len(cur) > 0 {
			phrases = append(phrases, cur)
			cur = nil
		}
	}
	for i := range doc.Sentences {
		for _, tok := range doc.SentenceTokens(i) {
			if tok.Stop {
				flush()
				continue
			}
			cur = append(cur, tok)
			if tok.Boundary {
				flush()
			}
		}
		flush()
	}
	return phrases
}

// wordScores computes the RAKE score degree/frequency of every content word.
// Degree counts co-occurrences across candidate phrases including the word itself.
func wordScores(phrases [][]domain.Token) map[string]float64 {
	degree := make(map[string]int)
	freq := make(map[string]int)
	for _, ph := range phrases {
		for _, tok := range ph {
			freq[tok.Text]++
			degree[tok.Text] += len(ph)
		}
	}
	scores := make(map[string]float64, len(freq))
	for w, f := range freq {
		scores[w] = float64(degree[w]) / float64(f)
	}
	return scores
}

// ScoreKeywords ranks candidate phrases by the sum of their word scores.
// Phrases are deduplicated by text; ties keep first-appearance order.
// Phrases longer than maxWords still feed word degrees but are not returned.
func ScoreKeywords(doc domain.Document, maxWords int) []domain.Keyword {
	phrases := candidatePhrases(doc)
	if len(phrases) == 0 {
		return nil
	}
	scores := wordScores(phrases)

	index := make(map[string]int)
	var keywords []domain.Keyword
	for _, ph := range phrases {
		if maxWords > 0 && len(ph) > maxWords {
			continue
		}
		words := make([]string, len(ph))
		score := 0.0
		for i, tok := range ph {
			words[i] = tok.Text
			score += scores[tok.Text]
		}
		key := strings.Join(words, " ")
		if i, ok := index[key]; ok {
			keywords[i].Frequency++
			continue
		}
		index[key] = len(keywords)
		keywords = append(keywords, domain.Keyword{
			Words:     words,
			Score:     score,
			Frequency: 1,
			FirstSeen: ph[0].Position,
		})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})
	return keywords
}
