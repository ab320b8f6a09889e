package domain

// Token is a single normalised word of a transcript.
type Token struct {
	// Text is the lowercased, diacritic-folded form used for matching.
	Text string

	// Surface is the word as it appeared in the input (case preserved).
	Surface string

	// Sentence is the zero-based index of the sentence holding the token.
	Sentence int

	// Position is the zero-based index of the token within the whole document.
	Position int

	// Stop is true when the token is a stopword and cannot be part of a phrase.
	Stop bool

	// Boundary is true when clause punctuation follows the token,
	// so no candidate phrase may continue past it.
	Boundary bool

	// SentenceStart is true for the first word of a sentence.
	SentenceStart bool
}

// Sentence is a contiguous range of tokens ended by sentence punctuation.
type Sentence struct {
	// Text is the raw sentence text, trimmed.
	Text string

	// Start is the position of the first token.
	Start int

	// End is one past the position of the last token.
	End int
}

// Document is a tokenised transcript. It is built once by the tokenizer
// and never mutated afterwards.
type Document struct {
	// Raw is the original input text.
	Raw string

	// Sentences are in input order.
	Sentences []Sentence

	// Tokens are in input order across all sentences.
	Tokens []Token
}

// IsEmpty returns true when the document holds no tokens.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Tokens) == 0
}

// SentenceTokens returns the tokens of sentence i.
func (d *Document) SentenceTokens(i int) []Token {
	if d == nil || i < 0 || i >= len(d.Sentences) {
		return nil
	}
	s := d.Sentences[i]
	return d.Tokens[s.Start:s.End]
}
