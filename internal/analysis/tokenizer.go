package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// foldText applies compatibility normalisation and strips combining marks,
// so "Café" and "Cafe" tokenise alike. Case is preserved.
// A transformer carries state, so a fresh chain is built per call.
func foldText(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFC.String(s)
	}
	return out
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '\n', '…':
		return true
	default:
		return false
	}
}

func isClauseBreak(r rune) bool {
	switch r {
	case ',', ':', '(', ')', '[', ']', '{', '}', '"', '“', '”', '«', '»', '—', '–', '|', '/':
		return true
	default:
		return false
	}
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenizer accumulates tokens and sentences in a single pass.
type tokenizer struct {
	lex *Lexicons
	src string
	doc domain.Document

	word      strings.Builder
	sentStart int // byte offset of the current sentence
	sentFirst int // position of the first token of the current sentence
}

// Tokenize splits text into sentences and normalised word tokens.
// Empty or whitespace-only input yields an empty Document.
func Tokenize(text string, lex *Lexicons) domain.Document {
	if lex == nil {
		lex = DefaultLexicons()
	}
	src := foldText(text)
	t := &tokenizer{lex: lex, src: src, doc: domain.Document{Raw: text}}
	if strings.TrimSpace(src) == "" {
		return t.doc
	}

	prev := rune(0)
	for i, r := range src {
		next, _ := utf8.DecodeRuneInString(src[i+utf8.RuneLen(r):])
		switch {
		case isWordRune(r):
			t.word.WriteRune(r)
		case isApostrophe(r) && t.word.Len() > 0 && unicode.IsLetter(next):
			t.word.WriteRune('\'')
		case r == '.' && unicode.IsDigit(prev) && unicode.IsDigit(next):
			t.word.WriteRune(r)
		case isSentenceEnd(r):
			t.flushWord()
			t.endSentence(i + utf8.RuneLen(r))
		case isClauseBreak(r):
			t.flushWord()
			t.markBoundary()
		default:
			// whitespace, hyphens and other symbols separate words
			t.flushWord()
		}
		prev = r
	}
	t.flushWord()
	t.endSentence(len(src))
	return t.doc
}

func (t *tokenizer) flushWord() {
	if t.word.Len() == 0 {
		return
	}
	surface := t.word.String()
	t.word.Reset()

	if idx := strings.LastIndex(surface, "'"); idx >= 0 {
		suffix := strings.ToLower(surface[idx+1:])
		if suffix == "s" {
			surface = surface[:idx]
		}
		surface = strings.ReplaceAll(surface, "'", "")
	}
	if surface == "" {
		return
	}

	text := strings.ToLower(surface)
	pos := len(t.doc.Tokens)
	t.doc.Tokens = append(t.doc.Tokens, domain.Token{
		Text:          text,
		Surface:       surface,
		Sentence:      len(t.doc.Sentences),
		Position:      pos,
		Stop:          t.isStop(text),
		SentenceStart: pos == t.sentFirst,
	})
}

func (t *tokenizer) isStop(text string) bool {
	if utf8.RuneCountInString(text) < 2 {
		return true
	}
	if strings.IndexFunc(text, func(r rune) bool { return !unicode.IsDigit(r) && r != '.' }) < 0 {
		return true
	}
	return t.lex.IsStopword(text)
}

func (t *tokenizer) markBoundary() {
	if n := len(t.doc.Tokens); n > t.sentFirst {
		t.doc.Tokens[n-1].Boundary = true
	}
}

func (t *tokenizer) endSentence(end int) {
	n := len(t.doc.Tokens)
	if n > t.sentFirst {
		t.doc.Sentences = append(t.doc.Sentences, domain.Sentence{
			Text:  strings.TrimSpace(t.src[t.sentStart:end]),
			Start: t.sentFirst,
			End:   n,
		})
	}
	t.sentStart = end
	t.sentFirst = n
}
