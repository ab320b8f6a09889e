// Package driven holds the interfaces the core services call to reach the
// outside world: provider APIs, the filesystem and configuration.
//
// Adapters under internal/adapters/driven, internal/providers and
// internal/normalisers implement them. Services receive them through
// their constructors, so tests swap in mocks or the in-memory stores.
//
// LexiconLoader and FileWatcher are optional. A nil LexiconLoader means
// only the built-in lexicons are used; a nil FileWatcher disables --watch.
// Everything else is required by the service that takes it.
//
// This package may import domain and nothing else from internal/.
package driven
