package domain

// Analysis defaults.
const (
	DefaultMaxKeywords    = 10
	DefaultMaxQueries     = 12
	DefaultMaxEntities    = 4
	DefaultMaxActions     = 3
	DefaultMaxPhraseWords = 4
	DefaultMaxQueryWords  = 6
	DefaultActionBonus    = 1.0
	DefaultEmotionBonus   = 0.5

	// BatchMaxQueries caps the queries kept per block in batch mode.
	BatchMaxQueries = 6
)

// AnalysisOptions tunes a single analysis run.
// Zero values select the defaults; negative limits are clamped to zero.
type AnalysisOptions struct {
	MaxKeywords    int
	MaxQueries     int
	MaxEntities    int
	MaxActions     int
	MaxPhraseWords int
	MaxQueryWords  int

	// Stopwords replaces the default stopword set when non-nil.
	Stopwords []string

	// EmotionLexicon replaces the default emotion lexicon when non-nil.
	// Keys must be valid emotion labels other than neutral.
	EmotionLexicon map[EmotionLabel][]string

	// EntityLexicon replaces the default entity nouns when non-nil.
	EntityLexicon []string

	// ActionLexicon replaces the default action verbs when non-nil.
	ActionLexicon []string
}

// WithDefaults returns a copy with zero limits replaced by defaults
// and negative limits clamped to zero.
func (o AnalysisOptions) WithDefaults() AnalysisOptions {
	o.MaxKeywords = limitOrDefault(o.MaxKeywords, DefaultMaxKeywords)
	o.MaxQueries = limitOrDefault(o.MaxQueries, DefaultMaxQueries)
	o.MaxEntities = limitOrDefault(o.MaxEntities, DefaultMaxEntities)
	o.MaxActions = limitOrDefault(o.MaxActions, DefaultMaxActions)
	o.MaxPhraseWords = limitOrDefault(o.MaxPhraseWords, DefaultMaxPhraseWords)
	o.MaxQueryWords = limitOrDefault(o.MaxQueryWords, DefaultMaxQueryWords)
	return o
}

// HasLexiconOverrides returns true if any lexicon field is set.
func (o AnalysisOptions) HasLexiconOverrides() bool {
	return o.Stopwords != nil || o.EmotionLexicon != nil ||
		o.EntityLexicon != nil || o.ActionLexicon != nil
}

func limitOrDefault(v, def int) int {
	switch {
	case v == 0:
		return def
	case v < 0:
		return 0
	default:
		return v
	}
}

// LexiconFile is the on-disk form of lexicon overrides.
// Nil fields leave the corresponding default in place.
type LexiconFile struct {
	Stopwords []string            `toml:"stopwords,omitempty" yaml:"stopwords,omitempty" json:"stopwords,omitempty"`
	Emotions  map[string][]string `toml:"emotions,omitempty" yaml:"emotions,omitempty" json:"emotions,omitempty"`
	Entities  []string            `toml:"entities,omitempty" yaml:"entities,omitempty" json:"entities,omitempty"`
	Actions   []string            `toml:"actions,omitempty" yaml:"actions,omitempty" json:"actions,omitempty"`
}

// Apply copies the non-nil lexicons of f into opts.
func (f *LexiconFile) Apply(opts AnalysisOptions) AnalysisOptions {
	if f == nil {
		return opts
	}
	if f.Stopwords != nil {
		opts.Stopwords = f.Stopwords
	}
	if f.Entities != nil {
		opts.EntityLexicon = f.Entities
	}
	if f.Actions != nil {
		opts.ActionLexicon = f.Actions
	}
	if f.Emotions != nil {
		opts.EmotionLexicon = make(map[EmotionLabel][]string, len(f.Emotions))
		for label, words := range f.Emotions {
			opts.EmotionLexicon[EmotionLabel(label)] = words
		}
	}
	return opts
}
