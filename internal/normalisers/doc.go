// Package normalisers turns transcript files into plain analysable text.
//
// Subpackages handle one family each: plaintext, markdown, subtitle
// transcripts (SRT/VTT), OpenTimelineIO timelines and Word documents.
// The Registry asks each in priority order and the first that claims the
// file's MIME type or extension wins.
package normalisers
