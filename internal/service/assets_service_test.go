package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fofostudio/marketing-api/internal/models"
)

func TestAnnotateMatchesByFileID(t *testing.T) {
	assets := []models.Asset{
		{ID: "1abcDEF234", Name: "promo.jpg"},
		{ID: "9zyxWVU876", Name: "logo.png"},
	}
	posts := []*models.Post{
		{
			ID:       "Calendario Marzo 2026_5",
			Title:    "Lanzamiento",
			Date:     "2026-03-15",
			ImageURL: "https://lh3.googleusercontent.com/d/1abcDEF234",
		},
	}

	Annotate(assets, posts)

	require.True(t, assets[0].UsedInCalendar)
	require.NotNil(t, assets[0].UsedBy)
	require.Equal(t, "Calendario Marzo 2026_5", assets[0].UsedBy.ID)
	require.Equal(t, "Lanzamiento", assets[0].UsedBy.Title)
	require.Equal(t, "2026-03-15", assets[0].UsedBy.Date)

	require.False(t, assets[1].UsedInCalendar)
	require.Nil(t, assets[1].UsedBy)
}

func TestAnnotateMatchesDifferentURLEncodings(t *testing.T) {
	// The sheet may carry any Drive URL shape; the file id substring is what
	// links them.
	assets := []models.Asset{
		{ID: "fileA"},
		{ID: "fileB"},
		{ID: "fileC"},
	}
	posts := []*models.Post{
		{ID: "p1", ImageURL: "https://drive.google.com/file/d/fileA/view"},
		{ID: "p2", ImageURL: "https://drive.google.com/open?id=fileB"},
	}

	Annotate(assets, posts)

	require.True(t, assets[0].UsedInCalendar)
	require.Equal(t, "p1", assets[0].UsedBy.ID)
	require.True(t, assets[1].UsedInCalendar)
	require.Equal(t, "p2", assets[1].UsedBy.ID)
	require.False(t, assets[2].UsedInCalendar)
}

func TestAnnotateFirstMatchWins(t *testing.T) {
	assets := []models.Asset{{ID: "shared"}}
	posts := []*models.Post{
		{ID: "first", ImageURL: "https://lh3.googleusercontent.com/d/shared"},
		{ID: "second", ImageURL: "https://lh3.googleusercontent.com/d/shared"},
	}

	Annotate(assets, posts)

	require.Equal(t, "first", assets[0].UsedBy.ID)
}

func TestAnnotateSkipsEmptyImageURLs(t *testing.T) {
	assets := []models.Asset{{ID: ""}}
	posts := []*models.Post{{ID: "p1", ImageURL: ""}}

	Annotate(assets, posts)

	require.False(t, assets[0].UsedInCalendar)
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "N/A"},
		{512, "512.0 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, formatFileSize(tt.bytes), "bytes %d", tt.bytes)
	}
}

func TestAssetType(t *testing.T) {
	require.Equal(t, models.AssetTypeImage, assetType("image/png"))
	require.Equal(t, models.AssetTypeVideo, assetType("video/mp4"))
	require.Equal(t, models.AssetTypePDF, assetType("application/pdf"))
	require.Equal(t, models.AssetTypeSheet, assetType("application/vnd.google-apps.spreadsheet"))
	require.Equal(t, models.AssetTypeFile, assetType("application/zip"))
}
