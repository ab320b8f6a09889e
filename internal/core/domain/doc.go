// Package domain holds the types every layer of vmt shares: the analysed
// Document with its keywords, entities, actions and emotion; the ranked
// Query; the MediaResult returned by providers; and the Session that ties
// queries to picked assets.
//
// Sentinel errors live here too, so adapters and drivers can match them
// with errors.Is without importing each other.
//
// domain imports the standard library only.
package domain
