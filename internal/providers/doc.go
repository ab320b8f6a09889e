// Package providers holds the stock-media provider adapters. Each
// subpackage implements driven.MediaProvider for one API and decodes its
// JSON with gjson, so missing or renamed fields degrade to empty values
// instead of decode errors.
package providers
