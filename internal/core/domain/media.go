package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MediaType selects between still images and video clips.
type MediaType string

// Media types.
const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// IsValid returns true if the media type is recognised.
func (m MediaType) IsValid() bool {
	return m == MediaPhoto || m == MediaVideo
}

// String returns the string representation.
func (m MediaType) String() string {
	return string(m)
}

// ParseMediaType converts user input into a MediaType.
// Empty input yields MediaPhoto.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case "":
		return MediaPhoto, nil
	case MediaPhoto, MediaVideo:
		return MediaType(s), nil
	default:
		return "", ErrUnsupportedMediaType
	}
}

// VideoFile is one rendition of a video asset.
type VideoFile struct {
	URL     string `json:"url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// MediaResult is a single asset returned by a provider.
type MediaResult struct {
	Query      string            `json:"query,omitempty"`
	Title      string            `json:"title"`
	Provider   string            `json:"provider"`
	URL        string            `json:"url"`
	Thumb      string            `json:"thumb,omitempty"`
	Author     string            `json:"author,omitempty"`
	License    string            `json:"license,omitempty"`
	MediaType  MediaType         `json:"media_type,omitempty"`
	Duration   float64           `json:"duration,omitempty"`
	VideoFiles []VideoFile       `json:"video_files,omitempty"`
	Extra      Extra             `json:"extra,omitempty"`

	// Error is set on stub results standing in for a failed provider call.
	Error bool `json:"error,omitempty"`
}

// Extra holds provider-specific attributes such as the asset id.
type Extra map[string]string

// UnmarshalJSON accepts values of any JSON type and keeps them as text, so
// session files that stored numeric ids or boolean flags still load.
// Null values are dropped.
func (e *Extra) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*e = nil
		return nil
	}
	out := make(Extra, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			out[k] = v
		case json.Number:
			out[k] = v.String()
		case bool:
			out[k] = strconv.FormatBool(v)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			out[k] = string(b)
		}
	}
	*e = out
	return nil
}

// MediaSearchOptions configures a provider search.
type MediaSearchOptions struct {
	// Limit is the number of results requested per provider.
	Limit int

	// MediaType selects photos or videos.
	MediaType MediaType

	// Providers restricts the search to these provider names when non-empty.
	Providers []string
}

// DefaultSearchLimit is the per-provider result count.
const DefaultSearchLimit = 8

// WithDefaults fills unset fields.
func (o MediaSearchOptions) WithDefaults() MediaSearchOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultSearchLimit
	}
	if o.MediaType == "" {
		o.MediaType = MediaPhoto
	}
	return o
}

// ProviderStatus describes a registered provider.
type ProviderStatus struct {
	Name       string      `json:"name"`
	Enabled    bool        `json:"enabled"`
	MediaTypes []MediaType `json:"media_types"`
}

// QueryResults groups the results of one query across providers.
type QueryResults struct {
	Query   string        `json:"query"`
	Results []MediaResult `json:"results"`
}
