// Package file keeps vmt settings in ~/.vmt/config.toml.
//
// Dotted keys map onto TOML tables, so "providers.pexels.api_key" is
// written as api_key under [providers.pexels]. The file is created with
// 0600 permissions because it holds provider API keys.
package file
