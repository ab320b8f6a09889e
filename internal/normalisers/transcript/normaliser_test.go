package transcript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

const srtSample = `1
00:00:01,000 --> 00:00:03,500
<i>The deer runs</i>
through the forest.

2
00:00:04,000 --> 00:00:06,000
- Golden light, calm morning.

3
00:00:06,000 --> 00:00:08,000
{\an8}Golden light, calm morning.
`

const vttSample = `WEBVTT
Kind: captions

NOTE produced by the edit bay

STYLE
::cue { color: yellow }

intro
00:00.000 --> 00:02.000 align:start
<v Narrator>A quiet river

00:02.000 --> 00:04.000
A quiet river
at dawn &amp; dusk

00:04.000 --> 00:05.000
A quiet river
at dawn &amp; dusk
with herons
`

func TestNormaliser_Describe(t *testing.T) {
	n := New()
	assert.Equal(t, "transcript", n.Name())
	assert.Contains(t, n.SupportedMIMETypes(), "text/vtt")
	assert.Equal(t, []string{".srt", ".vtt"}, n.SupportedExtensions())
	assert.Equal(t, 80, n.Priority())
}

func TestNormalise_SRT(t *testing.T) {
	raw := &domain.RawDocument{URI: "clips/deer_scene.srt", MIMEType: "application/x-subrip", Content: []byte(srtSample)}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	tr := result.Transcript
	assert.Equal(t, "srt", tr.Format)
	assert.Equal(t, "deer scene", tr.Title)
	assert.Equal(t, "The deer runs\nthrough the forest.\nGolden light, calm morning.", tr.Text)
	assert.Equal(t, 3, tr.Metadata["cues"])
}

func TestNormalise_VTT(t *testing.T) {
	raw := &domain.RawDocument{URI: "river.vtt", MIMEType: "text/vtt", Content: []byte(vttSample)}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	tr := result.Transcript
	assert.Equal(t, "vtt", tr.Format)
	assert.Equal(t, "A quiet river\nat dawn & dusk\nwith herons", tr.Text)
	assert.Equal(t, 3, tr.Metadata["cues"])
}

func TestNormalise_RollUpCaptions(t *testing.T) {
	content := "WEBVTT\n\n00:00.000 --> 00:01.000\nthe fox\n\n00:01.000 --> 00:02.000\nthe fox jumps\n"
	raw := &domain.RawDocument{URI: "roll.vtt", Content: []byte(content)}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "the fox jumps", result.Transcript.Text)
}

func TestNormalise_Empty(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{URI: "empty.srt"})

	require.NoError(t, err)
	assert.Empty(t, result.Transcript.Text)
	assert.Equal(t, 0, result.Transcript.Metadata["cues"])
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<b>bold</b> words", "bold words"},
		{"- Speaker line", "Speaker line"},
		{"{\\an8}top   text", "top text"},
		{"rock &amp; roll", "rock & roll"},
		{"<c.yellow></c>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCaption(tt.input))
		})
	}
}
