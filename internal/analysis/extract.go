package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

const (
	minEntityLen       = 3
	minSuffixActionLen = 5
)

// ExtractEntities returns entity-like terms in first-occurrence order.
//
// A run of capitalised content words counts as one entity. A lone
// capitalised word that opens a sentence is ignored, since capitalisation
// there carries no signal, unless the entity lexicon knows it. Lowercase
// words found in the entity lexicon are entities too.
func ExtractEntities(doc domain.Document, lex *Lexicons) []domain.Term {
	if lex == nil {
		lex = DefaultLexicons()
	}
	seen := make(map[string]bool)
	var out []domain.Term
	add := func(text string) {
		if seen[text] || utf8.RuneCountInString(text) < minEntityLen {
			return
		}
		if _, banned := bannedEntities[text]; banned {
			return
		}
		seen[text] = true
		out = append(out, domain.Term{Text: text, Category: domain.TermEntity})
	}

	var run []domain.Token
	flush := func() {
		switch {
		case len(run) == 0:
		case len(run) == 1 && run[0].SentenceStart && !lex.IsEntity(run[0].Text):
		default:
			words := make([]string, 0, len(run))
			for _, tok := range run {
				if _, banned := bannedEntities[tok.Text]; !banned {
					words = append(words, tok.Text)
				}
			}
			add(strings.Join(words, " "))
		}
		run = run[:0]
	}

	for i := range doc.Sentences {
		for _, tok := range doc.SentenceTokens(i) {
			switch {
			case tok.Stop:
				flush()
			case isCapitalised(tok.Surface):
				run = append(run, tok)
				if tok.Boundary {
					flush()
				}
			default:
				flush()
				if lex.IsEntity(tok.Text) {
					add(tok.Text)
				}
			}
		}
		flush()
	}
	return out
}

// ExtractActions returns verb-like tokens in first-occurrence order: lexicon
// verbs in any simple inflection, or words with an -ing or -ed suffix.
func ExtractActions(doc domain.Document, lex *Lexicons) []domain.Term {
	if lex == nil {
		lex = DefaultLexicons()
	}
	seen := make(map[string]bool)
	var out []domain.Term
	for _, tok := range doc.Tokens {
		if tok.Stop || seen[tok.Text] || !isAction(tok.Text, lex) {
			continue
		}
		seen[tok.Text] = true
		out = append(out, domain.Term{Text: tok.Text, Category: domain.TermAction})
	}
	return out
}

func isAction(word string, lex *Lexicons) bool {
	if _, excluded := notActions[word]; excluded {
		return false
	}
	if lex.IsAction(word) {
		return true
	}
	if utf8.RuneCountInString(word) < minSuffixActionLen {
		return false
	}
	return strings.HasSuffix(word, "ing") || strings.HasSuffix(word, "ed")
}

func isCapitalised(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
