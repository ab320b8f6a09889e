// Package export writes session selections to cue sheets, shot lists and
// reports. Each exporter implements driven.Exporter for one format and
// writes through a temporary file so a failed export never leaves a
// half-written file behind.
package export
