// Package lexicon reads and writes lexicon override files.
//
// The format follows the file extension: .toml, .yaml/.yml or .json.
// Unknown keys are rejected so a typo does not silently leave a
// default lexicon in place.
package lexicon
