// Package memory provides in-memory adapters for tests and for
// embedding vmt without touching the filesystem.
package memory
