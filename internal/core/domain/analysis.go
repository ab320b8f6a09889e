package domain

import "strings"

// Keyword is a RAKE candidate phrase with its score.
type Keyword struct {
	// Words are the phrase words in order.
	Words []string `json:"words"`

	// Score is the sum of the member word scores (degree / frequency).
	Score float64 `json:"score"`

	// Frequency is how many times the phrase occurred.
	Frequency int `json:"frequency"`

	// FirstSeen is the token position of the first occurrence.
	FirstSeen int `json:"-"`
}

// Phrase returns the words joined by single spaces.
func (k Keyword) Phrase() string {
	return strings.Join(k.Words, " ")
}

// TermCategory classifies an extracted term.
type TermCategory string

// Term categories.
const (
	TermEntity TermCategory = "entity"
	TermAction TermCategory = "action"
)

// Term is an extracted entity or action.
type Term struct {
	Text     string       `json:"text"`
	Category TermCategory `json:"category"`
}

// EmotionLabel is one of a closed set of tone labels.
type EmotionLabel string

// Emotion labels.
const (
	EmotionJoy      EmotionLabel = "joy"
	EmotionCalm     EmotionLabel = "calm"
	EmotionHope     EmotionLabel = "hope"
	EmotionRomance  EmotionLabel = "romance"
	EmotionSurprise EmotionLabel = "surprise"
	EmotionTension  EmotionLabel = "tension"
	EmotionFear     EmotionLabel = "fear"
	EmotionSadness  EmotionLabel = "sadness"
	EmotionAnger    EmotionLabel = "anger"
	EmotionNeutral  EmotionLabel = "neutral"
)

// EmotionLabels returns every label in a stable order.
func EmotionLabels() []EmotionLabel {
	return []EmotionLabel{
		EmotionJoy, EmotionCalm, EmotionHope, EmotionRomance, EmotionSurprise,
		EmotionTension, EmotionFear, EmotionSadness, EmotionAnger, EmotionNeutral,
	}
}

// IsValid returns true if the label belongs to the closed set.
func (l EmotionLabel) IsValid() bool {
	switch l {
	case EmotionJoy, EmotionCalm, EmotionHope, EmotionRomance, EmotionSurprise,
		EmotionTension, EmotionFear, EmotionSadness, EmotionAnger, EmotionNeutral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l EmotionLabel) String() string {
	return string(l)
}

// Emotion is a tone label with the number of lexicon hits behind it.
type Emotion struct {
	Label EmotionLabel `json:"label"`
	Count int          `json:"count"`
}

// Query is a ranked search query with the parts it was built from.
type Query struct {
	// Text is the rendered query, lowercased and single-spaced.
	Text string `json:"query"`

	// Topic is the keyword phrase or entity the query starts from.
	Topic string `json:"topic"`

	// Action is the action term appended, if any.
	Action string `json:"action,omitempty"`

	// Emotion is the tone label appended, if any.
	Emotion EmotionLabel `json:"emotion,omitempty"`

	// Score is the combined ranking score.
	Score float64 `json:"score"`

	// Rank is the one-based position in the final list.
	Rank int `json:"rank"`
}

// Analysis holds every intermediate signal of one analysis run.
type Analysis struct {
	Document *Document `json:"-"`
	Keywords []Keyword `json:"keywords"`
	Entities []Term    `json:"entities"`
	Actions  []Term    `json:"actions"`
	Emotions []Emotion `json:"emotions"`
	Queries  []Query   `json:"queries"`
}

// QueryTexts returns the rendered text of each query, in rank order.
func (a *Analysis) QueryTexts() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.Queries))
	for i := range a.Queries {
		out[i] = a.Queries[i].Text
	}
	return out
}

// TopEmotion returns the highest-ranked emotion, or neutral.
func (a *Analysis) TopEmotion() Emotion {
	if a == nil || len(a.Emotions) == 0 {
		return Emotion{Label: EmotionNeutral}
	}
	return a.Emotions[0]
}
