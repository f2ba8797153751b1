package sheetcal

import (
	"regexp"
	"strings"
	"time"

	"github.com/fofostudio/marketing-api/internal/models"
)

var (
	feedSheetPattern  = regexp.MustCompile(`(?i)feed|posts|publicaciones`)
	storySheetPattern = regexp.MustCompile(`(?i)stories|historias`)
)

const titlePreviewLen = 50

// DefaultTypeForSheet guesses the post type a tab holds when a row has no
// usable type cell. Calendar tabs default to feed.
func DefaultTypeForSheet(sheetName string) string {
	if storySheetPattern.MatchString(sheetName) {
		return models.PostTypeStory
	}
	if feedSheetPattern.MatchString(sheetName) {
		return models.PostTypeFeed
	}
	return models.PostTypeFeed
}

// inferType maps a free-text type cell onto one of the known post types, or
// keeps the sheet default when nothing matches.
func inferType(cell, defaultType string) string {
	if cell == "" {
		return defaultType
	}
	value := strings.ToLower(cell)
	switch {
	case strings.Contains(value, "reel"):
		return models.PostTypeReel
	case strings.Contains(value, "carrusel"), strings.Contains(value, "carousel"):
		return models.PostTypeCarousel
	case strings.Contains(value, "story"), strings.Contains(value, "historia"):
		return models.PostTypeStory
	case strings.Contains(value, "feed"), strings.Contains(value, "post"),
		strings.Contains(value, "educational"), strings.Contains(value, "case"),
		strings.Contains(value, "humor"):
		return models.PostTypeFeed
	}
	return defaultType
}

func typeLabel(postType string) string {
	switch postType {
	case models.PostTypeFeed:
		return "📱"
	case models.PostTypeStory:
		return "📲"
	case models.PostTypeReel:
		return "🎬"
	default:
		return "🎠"
	}
}

// BuildTitle synthesizes a display title from the post type and the first
// characters of the message, since the sheets carry no separate title column.
func BuildTitle(postType, message string) string {
	preview := message
	if runes := []rune(preview); len(runes) > titlePreviewLen {
		preview = string(runes[:titlePreviewLen]) + "..."
	}
	return typeLabel(postType) + " " + preview
}

// PostFromRow maps one data row into a Post using the tab's resolved columns.
// Returns nil when the row has no date or no message; such rows are skipped,
// not errors. rowIndex is the 1-based physical row (row 1 is the header).
func PostFromRow(sheetName string, rowIndex int, row []string, cols ColumnMap, now time.Time) *models.Post {
	if len(row) == 0 {
		return nil
	}

	date := cellAt(row, cols.Date)
	if date == "" {
		return nil
	}

	message := cellAt(row, cols.Message)
	if message == "" {
		return nil
	}

	postType := inferType(cellAt(row, cols.Type), DefaultTypeForSheet(sheetName))
	timeStr := NormalizeTime(cellAt(row, cols.Time))

	return &models.Post{
		ID:          EncodePostID(sheetName, rowIndex),
		SheetName:   sheetName,
		RowIndex:    rowIndex,
		Date:        date,
		Time:        timeStr,
		Title:       BuildTitle(postType, message),
		Description: message,
		Hashtags:    cellAt(row, cols.Hashtags),
		Type:        postType,
		Platform:    NormalizePlatform(cellAt(row, cols.Platform)),
		ImageURL:    NormalizeDriveURL(cellAt(row, cols.Image)),
		Status:      InferStatus(date, timeStr, now),
	}
}
