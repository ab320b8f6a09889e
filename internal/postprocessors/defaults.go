package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/postprocessors/blocks"
	"github.com/custodia-labs/vmt/internal/postprocessors/dedupe"
)

// DefaultOrder splits first, then drops repeated lines.
var DefaultOrder = []string{"blocks", "dedupe"}

// RegisterDefaults registers the built-in stages.
func RegisterDefaults(r *Registry) {
	r.Register("blocks", buildBlocks)
	r.Register("dedupe", buildDedupe)
}

// DefaultPipeline returns the built-in stages in DefaultOrder.
func DefaultPipeline() *Pipeline {
	r := NewRegistry()
	RegisterDefaults(r)
	p, err := r.BuildPipeline(DefaultOrder, nil)
	if err != nil {
		// Built-in builders accept nil config.
		panic(err)
	}
	return p
}

// buildBlocks reads max_chars, the longest block before wrapping at a
// sentence end.
func buildBlocks(cfg map[string]any) (driven.PostProcessor, error) {
	size, err := intOption(cfg, "max_chars")
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("max_chars must not be negative")
	}
	return blocks.New(blocks.WithMaxChars(size)), nil
}

func buildDedupe(_ map[string]any) (driven.PostProcessor, error) {
	return dedupe.New(), nil
}

// intOption reads key as an integer. TOML yields int64 and JSON float64.
// A missing key is zero.
func intOption(cfg map[string]any, key string) (int, error) {
	val, ok := cfg[key]
	if !ok {
		return 0, nil
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("%s: want an integer, got %T", key, val)
}
