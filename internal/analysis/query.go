package analysis

import (
	"sort"
	"strings"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Ranking weights added to a topic score.
const (
	ActionBonus  = domain.DefaultActionBonus
	EmotionBonus = domain.DefaultEmotionBonus
)

// QueryInput is everything the query builder combines.
type QueryInput struct {
	Keywords []domain.Keyword
	Entities []domain.Term
	Actions  []domain.Term
	Emotions []domain.Emotion
}

type topic struct {
	text  string
	score float64
}

// BuildQueries renders the cross-product of topics, actions and the top
// emotion into ranked, deduplicated query strings.
//
// Topics are the top keywords followed by the top entities. Each topic is
// combined with no action and each top action, and with no emotion and the
// top emotion. A part whose words are already in the query adds nothing,
// including its bonus. Renders longer than MaxQueryWords are dropped.
// opts must already be resolved with WithDefaults.
func BuildQueries(in QueryInput, opts domain.AnalysisOptions) []domain.Query {
	if len(in.Keywords) == 0 || opts.MaxKeywords == 0 || opts.MaxQueries == 0 {
		return []domain.Query{}
	}

	topics := collectTopics(in, opts)
	actions := []string{""}
	for i := 0; i < len(in.Actions) && i < opts.MaxActions; i++ {
		actions = append(actions, in.Actions[i].Text)
	}
	emotions := []domain.Emotion{{}}
	if len(in.Emotions) > 0 && in.Emotions[0].Count > 0 && in.Emotions[0].Label != domain.EmotionNeutral {
		emotions = append(emotions, in.Emotions[0])
	}

	var candidates []domain.Query
	for _, tp := range topics {
		for _, action := range actions {
			for _, emo := range emotions {
				q, ok := render(tp, action, emo, opts.MaxQueryWords)
				if ok {
					candidates = append(candidates, q)
				}
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	seen := make(map[string]bool, len(candidates))
	out := make([]domain.Query, 0, opts.MaxQueries)
	for _, q := range candidates {
		if seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		q.Rank = len(out) + 1
		out = append(out, q)
		if len(out) == opts.MaxQueries {
			break
		}
	}
	return out
}

func collectTopics(in QueryInput, opts domain.AnalysisOptions) []topic {
	topics := make([]topic, 0, opts.MaxKeywords+opts.MaxEntities)
	for i := 0; i < len(in.Keywords) && i < opts.MaxKeywords; i++ {
		topics = append(topics, topic{text: in.Keywords[i].Phrase(), score: in.Keywords[i].Score})
	}
	for i := 0; i < len(in.Entities) && i < opts.MaxEntities; i++ {
		topics = append(topics, topic{text: in.Entities[i].Text, score: entityScore(in.Entities[i].Text, in.Keywords)})
	}
	return topics
}

// entityScore is the best score of a keyword phrase that contains the
// entity words as a contiguous run. Entities outside every phrase score 1.
func entityScore(text string, keywords []domain.Keyword) float64 {
	words := strings.Fields(text)
	best := 0.0
	for _, kw := range keywords {
		if kw.Score > best && containsRun(kw.Words, words) {
			best = kw.Score
		}
	}
	if best == 0 {
		return 1
	}
	return best
}

func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func render(tp topic, action string, emo domain.Emotion, maxWords int) (domain.Query, bool) {
	words := strings.Fields(tp.text)
	q := domain.Query{Topic: tp.text, Score: tp.score}

	if action != "" {
		var added bool
		words, added = appendNew(words, action)
		if added {
			q.Action = action
			q.Score += ActionBonus
		}
	}
	if emo.Label != "" {
		var added bool
		words, added = appendNew(words, string(emo.Label))
		if added {
			q.Emotion = emo.Label
			q.Score += EmotionBonus * float64(emo.Count)
		}
	}

	if len(words) == 0 || len(words) > maxWords {
		return domain.Query{}, false
	}
	q.Text = normaliseQuery(strings.Join(words, " "))
	return q, true
}

// appendNew appends the words of part that are not already present.
func appendNew(words []string, part string) ([]string, bool) {
	present := make(map[string]bool, len(words))
	for _, w := range words {
		present[w] = true
	}
	added := false
	for _, w := range strings.Fields(part) {
		if !present[w] {
			words = append(words, w)
			present[w] = true
			added = true
		}
	}
	return words, added
}

func normaliseQuery(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
