// Package analysis turns transcript text into ranked stock-media queries.
//
// The pipeline runs strictly forward:
//
//	text -> Tokenize -> ScoreKeywords (RAKE) -> ExtractEntities/ExtractActions
//	     -> ClassifyTone -> BuildQueries
//
// Every stage is a pure function over its inputs and a read-only Lexicons
// value, so an Analyzer may be shared between goroutines. The only error
// this package reports wraps domain.ErrInvalidConfiguration.
package analysis
