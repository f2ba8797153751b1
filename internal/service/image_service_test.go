package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fofostudio/marketing-api/internal/models"
)

func TestBuildImagePromptUsesFirstLineOnly(t *testing.T) {
	prompt := buildImagePrompt("Nueva promo de marzo\nDetalles internos que no van al diseño", models.PostTypeFeed)

	require.Contains(t, prompt, "Nueva promo de marzo")
	require.NotContains(t, prompt, "Detalles internos")
	require.Contains(t, prompt, "square feed post")
}

func TestBuildImagePromptStoryFormat(t *testing.T) {
	prompt := buildImagePrompt("Historia del día", models.PostTypeStory)

	require.Contains(t, prompt, "vertical story format")
	require.NotContains(t, prompt, "square feed post")
}

func TestBuildImagePromptTruncatesLongCopy(t *testing.T) {
	long := strings.Repeat("ñ", 400)
	prompt := buildImagePrompt(long, models.PostTypeFeed)

	require.Contains(t, prompt, strings.Repeat("ñ", promptMessageLen))
	require.NotContains(t, prompt, strings.Repeat("ñ", promptMessageLen+1))
}
