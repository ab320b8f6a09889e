package analysis

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Lexicons holds the word lists used by every stage.
// A Lexicons value is never modified after construction.
type Lexicons struct {
	stopwords map[string]struct{}
	emotions  map[string][]domain.EmotionLabel
	entities  map[string]struct{}
	actions   map[string]struct{}

	// source keeps the label -> words form for display and export.
	source map[domain.EmotionLabel][]string
}

var defaultStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing", "down",
	"during", "each", "either", "every", "few", "for", "from", "further", "had", "has",
	"have", "having", "he", "her", "here", "hers", "herself", "him", "himself", "his",
	"how", "i", "if", "in", "into", "is", "it", "its", "itself", "just", "me", "mine",
	"more", "most", "my", "myself", "neither", "no", "nor", "not", "of", "off", "on",
	"once", "only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
	"same", "she", "should", "so", "some", "such", "than", "that", "the", "their",
	"theirs", "them", "themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "upon", "us", "very", "was", "we",
	"were", "what", "when", "where", "which", "while", "who", "whom", "why", "will",
	"with", "within", "without", "would", "you", "your", "yours", "yourself",
	"yourselves",
}

var defaultEmotions = map[domain.EmotionLabel][]string{
	domain.EmotionJoy: {
		"joy", "joyful", "happy", "happiness", "cheer", "cheerful", "delight",
		"delighted", "celebrate", "celebration", "playful", "smile", "smiling", "laughter",
	},
	domain.EmotionCalm: {
		"calm", "peaceful", "peace", "serene", "serenity", "relaxed", "relaxing",
		"tranquil", "quiet", "gentle", "soothing",
	},
	domain.EmotionHope: {
		"hope", "hopeful", "aspire", "aspiration", "optimistic", "optimism",
		"uplifting", "inspiring", "inspired", "dream",
	},
	domain.EmotionRomance: {
		"love", "loving", "romantic", "romance", "tender", "tenderness", "intimate",
		"kiss", "embrace",
	},
	domain.EmotionSurprise: {
		"surprise", "surprised", "shocked", "shock", "unexpected", "sudden",
		"astonished", "amazed",
	},
	domain.EmotionTension: {
		"tense", "tension", "anxious", "anxiety", "worried", "nervous", "uneasy",
		"suspense", "stress", "stressed", "urgent",
	},
	domain.EmotionFear: {
		"fear", "afraid", "scared", "frightened", "terror", "terrified", "dread",
		"panic", "horror",
	},
	domain.EmotionSadness: {
		"sad", "sadness", "melancholy", "bittersweet", "lonely", "loneliness",
		"regret", "grief", "sorrow", "tears", "mourning", "gloomy",
	},
	domain.EmotionAnger: {
		"angry", "anger", "rage", "furious", "irritated", "frustrated", "frustration",
		"outrage", "hostile",
	},
}

var defaultEntities = []string{
	"man", "woman", "person", "people", "child", "children", "kid", "girl", "boy",
	"family", "couple", "crowd", "team", "doctor", "teacher", "worker", "dog", "cat",
	"horse", "bird", "deer", "fish", "city", "street", "road", "forest", "beach",
	"ocean", "sea", "mountain", "river", "lake", "sky", "desert", "field", "garden",
	"park", "bridge", "car", "train", "bicycle", "office", "kitchen", "house", "home",
	"building", "laptop", "phone", "computer", "coffee", "sunset", "sunrise", "rain",
	"snow", "fire", "water", "tree", "flower",
}

var defaultActions = []string{
	"cut", "run", "walk", "talk", "look", "see", "watch", "drive", "type", "scroll",
	"shoot", "cook", "eat", "drink", "dance", "sing", "cry", "laugh", "argue", "fight",
	"open", "close", "enter", "exit", "hold", "push", "pull", "lift", "throw", "catch",
	"point", "think", "wait", "sit", "stand", "write", "wipe", "pour", "steam", "rise",
	"bloom", "glow", "drift", "click", "swim", "fly", "jump", "climb", "ride", "hug",
	"kiss", "smile", "read", "play", "work", "build", "paint", "fall", "spin", "wave",
}

// Entity candidates that are screenplay slug words, not subjects.
var bannedEntities = map[string]struct{}{
	"int": {}, "ext": {}, "day": {}, "night": {}, "cont": {}, "continuous": {},
	"later": {}, "fade": {}, "cut": {}, "scene": {}, "vo": {}, "os": {},
}

// Words that end in -ing or -ed without being verbs.
var notActions = map[string]struct{}{
	"thing": {}, "things": {}, "nothing": {}, "something": {}, "anything": {},
	"everything": {}, "morning": {}, "evening": {}, "ceiling": {}, "building": {},
	"wedding": {}, "spring": {}, "string": {}, "sibling": {}, "during": {},
	"pudding": {}, "darling": {}, "clothing": {}, "lightning": {}, "hundred": {},
	"sacred": {}, "naked": {}, "wicked": {}, "rugged": {}, "ragged": {},
	"beloved": {}, "speed": {}, "breed": {}, "indeed": {}, "greed": {},
	"kindred": {}, "bobsled": {},
}

var (
	defaultOnce sync.Once
	defaults    *Lexicons
)

// DefaultLexicons returns the process-wide built-in lexicons.
// The value is built once and shared; callers must not modify it.
func DefaultLexicons() *Lexicons {
	defaultOnce.Do(func() {
		defaults = &Lexicons{
			stopwords: wordSet(defaultStopwords),
			entities:  wordSet(defaultEntities),
			actions:   wordSet(defaultActions),
		}
		defaults.emotions, defaults.source = emotionIndex(defaultEmotions)
	})
	return defaults
}

// NewLexicons builds lexicons from the overrides in opts, falling back to
// the defaults for any field left nil. Malformed overrides produce an
// error wrapping domain.ErrInvalidConfiguration.
func NewLexicons(opts domain.AnalysisOptions) (*Lexicons, error) {
	base := DefaultLexicons()
	if !opts.HasLexiconOverrides() {
		return base, nil
	}

	lex := &Lexicons{
		stopwords: base.stopwords,
		emotions:  base.emotions,
		entities:  base.entities,
		actions:   base.actions,
		source:    base.source,
	}

	if opts.Stopwords != nil {
		words, err := cleanWords("stopwords", opts.Stopwords, true)
		if err != nil {
			return nil, err
		}
		lex.stopwords = wordSet(words)
	}
	if opts.EntityLexicon != nil {
		words, err := cleanWords("entity_lexicon", opts.EntityLexicon, false)
		if err != nil {
			return nil, err
		}
		lex.entities = wordSet(words)
	}
	if opts.ActionLexicon != nil {
		words, err := cleanWords("action_lexicon", opts.ActionLexicon, false)
		if err != nil {
			return nil, err
		}
		lex.actions = wordSet(words)
	}
	if opts.EmotionLexicon != nil {
		if len(opts.EmotionLexicon) == 0 {
			return nil, domain.NewConfigError("emotion_lexicon", "no labels defined")
		}
		cleaned := make(map[domain.EmotionLabel][]string, len(opts.EmotionLexicon))
		for label, words := range opts.EmotionLexicon {
			if !label.IsValid() || label == domain.EmotionNeutral {
				return nil, domain.NewConfigError("emotion_lexicon", "unknown label %q", label)
			}
			field := "emotion_lexicon." + string(label)
			w, err := cleanWords(field, words, false)
			if err != nil {
				return nil, err
			}
			cleaned[label] = w
		}
		lex.emotions, lex.source = emotionIndex(cleaned)
	}
	return lex, nil
}

// IsStopword reports whether word is in the stopword set.
func (l *Lexicons) IsStopword(word string) bool {
	_, ok := l.stopwords[word]
	return ok
}

// IsEntity reports whether word is in the entity lexicon.
func (l *Lexicons) IsEntity(word string) bool {
	_, ok := l.entities[word]
	return ok
}

// IsAction reports whether word or one of its base forms is a lexicon verb.
func (l *Lexicons) IsAction(word string) bool {
	for _, form := range baseForms(word) {
		if _, ok := l.actions[form]; ok {
			return true
		}
	}
	return false
}

// Emotions returns the labels word maps to.
func (l *Lexicons) Emotions(word string) []domain.EmotionLabel {
	if labels, ok := l.emotions[word]; ok {
		return labels
	}
	if strings.HasSuffix(word, "s") && len(word) > 3 {
		return l.emotions[strings.TrimSuffix(word, "s")]
	}
	return nil
}

// EmotionWords returns a copy of the label -> words table.
func (l *Lexicons) EmotionWords() map[domain.EmotionLabel][]string {
	out := make(map[domain.EmotionLabel][]string, len(l.source))
	for label, words := range l.source {
		out[label] = append([]string(nil), words...)
	}
	return out
}

// Stopwords returns the stopword set as a sorted slice.
func (l *Lexicons) Stopwords() []string { return sortedKeys(l.stopwords) }

// EntityWords returns the entity lexicon as a sorted slice.
func (l *Lexicons) EntityWords() []string { return sortedKeys(l.entities) }

// ActionWords returns the action lexicon as a sorted slice.
func (l *Lexicons) ActionWords() []string { return sortedKeys(l.actions) }

// baseForms returns word followed by plausible uninflected forms
// (-s, -es, -ed, -ing, with doubled-consonant and silent-e variants).
func baseForms(word string) []string {
	forms := []string{word}
	add := func(stem string) {
		if len(stem) >= 2 {
			forms = append(forms, stem)
		}
	}
	addStem := func(stem string) {
		add(stem)
		add(stem + "e")
		if n := len(stem); n >= 3 && stem[n-1] == stem[n-2] {
			add(stem[:n-1])
		}
	}

	switch {
	case strings.HasSuffix(word, "ing"):
		addStem(strings.TrimSuffix(word, "ing"))
	case strings.HasSuffix(word, "ied"):
		add(strings.TrimSuffix(word, "ied") + "y")
	case strings.HasSuffix(word, "ed"):
		addStem(strings.TrimSuffix(word, "ed"))
	case strings.HasSuffix(word, "ies"):
		add(strings.TrimSuffix(word, "ies") + "y")
	case strings.HasSuffix(word, "es"):
		add(strings.TrimSuffix(word, "es"))
		add(strings.TrimSuffix(word, "s"))
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		add(strings.TrimSuffix(word, "s"))
	}
	return forms
}

func cleanWords(field string, words []string, allowEmptyList bool) ([]string, error) {
	if len(words) == 0 && !allowEmptyList {
		return nil, domain.NewConfigError(field, "word list is empty")
	}
	out := make([]string, 0, len(words))
	for i, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, domain.NewConfigError(field, "entry %d is empty", i)
		}
		if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
			return nil, domain.NewConfigError(field, "entry %q contains whitespace", w)
		}
		out = append(out, foldText(w))
	}
	return out, nil
}

func emotionIndex(src map[domain.EmotionLabel][]string) (map[string][]domain.EmotionLabel, map[domain.EmotionLabel][]string) {
	index := make(map[string][]domain.EmotionLabel)
	source := make(map[domain.EmotionLabel][]string, len(src))
	for _, label := range domain.EmotionLabels() {
		words, ok := src[label]
		if !ok {
			continue
		}
		source[label] = append([]string(nil), words...)
		for _, w := range words {
			index[w] = appendLabel(index[w], label)
		}
	}
	return index, source
}

func appendLabel(labels []domain.EmotionLabel, label domain.EmotionLabel) []domain.EmotionLabel {
	for _, l := range labels {
		if l == label {
			return labels
		}
	}
	return append(labels, label)
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
