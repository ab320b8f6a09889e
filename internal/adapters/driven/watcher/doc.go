// Package watcher reports changes to a single file using fsnotify.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file over the original
// keep producing events.
package watcher
