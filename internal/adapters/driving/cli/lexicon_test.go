package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/adapters/driven/lexicon"
)

func TestLexiconDump(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			setupTestServices(t)
			path := filepath.Join(t.TempDir(), "lexicon"+ext)

			out, err := execute(t, "", "lexicon", "dump", path)

			require.NoError(t, err)
			assert.Contains(t, out, "Wrote ")
			assert.Contains(t, out, path)

			lf, err := lexicon.NewLoader().Load(context.Background(), path)
			require.NoError(t, err)
			assert.Contains(t, lf.Stopwords, "the")
			assert.NotEmpty(t, lf.Emotions["calm"])
			assert.NotEmpty(t, lf.Actions)
		})
	}
}

func TestLexiconDump_UsesConfiguredLexiconFile(t *testing.T) {
	env := setupTestServices(t)
	dir := t.TempDir()
	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(override, []byte("stopwords = [\"the\", \"custom\"]\n"), 0644))
	env.analysis.SetLexiconFile(override)
	out := filepath.Join(dir, "dump.toml")

	_, err := execute(t, "", "lexicon", "dump", out)

	require.NoError(t, err)
	lf, err := lexicon.NewLoader().Load(context.Background(), out)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"the", "custom"}, lf.Stopwords)
}

func TestLexiconDump_UnsupportedExtension(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "lexicon", "dump", filepath.Join(t.TempDir(), "lexicon.xml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lexicon file lexicon.xml")
}
