// Package sqlite writes sessions into single-file SQLite bundles that can
// be opened with any SQLite client.
//
// It uses modernc.org/sqlite, so no cgo is needed. A bundle has three
// tables: sessions, queries (ordered per session) and selections (the
// asset picked for a query). The schema is built from the numbered
// scripts in migrations/, and the applied versions are recorded in
// schema_migrations so reopening a bundle only runs the new ones.
package sqlite
