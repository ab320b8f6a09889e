package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

func TestClassifyTone_NoHitsIsNeutral(t *testing.T) {
	got := ClassifyTone(Tokenize("a blue car parked outside", nil), nil)

	assert.Equal(t, []domain.Emotion{{Label: domain.EmotionNeutral, Count: 0}}, got)
}

func TestClassifyTone_CountDescThenAlphabetical(t *testing.T) {
	text := "a sad lonely night, an anxious wait, a calm sea"

	got := ClassifyTone(Tokenize(text, nil), nil)

	require.Len(t, got, 3)
	assert.Equal(t, domain.Emotion{Label: domain.EmotionSadness, Count: 2}, got[0])
	assert.Equal(t, domain.EmotionCalm, got[1].Label)
	assert.Equal(t, domain.EmotionTension, got[2].Label)
}

func TestClassifyTone_PluralForms(t *testing.T) {
	got := ClassifyTone(Tokenize("hopes and dreams", nil), nil)

	require.Len(t, got, 1)
	assert.Equal(t, domain.Emotion{Label: domain.EmotionHope, Count: 2}, got[0])
}
