package sheetcal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var calendarHeader = []string{"Fecha", "Hora", "Mensaje Completo", "Descripción", "Tipo", "Estado", "Plataformas", "URL Imagen"}

func TestPostFromRow(t *testing.T) {
	cols := ResolveColumns(calendarHeader)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	row := []string{"2026-03-10", "3:00 PM", "Lanzamiento de la nueva marca", "", "Reel", "scheduled", "FB + IG", "https://drive.google.com/file/d/ABC123/view?usp=drivesdk"}
	post := PostFromRow("Calendario Marzo 2026", 5, row, cols, now)

	require.NotNil(t, post)
	require.Equal(t, "Calendario Marzo 2026_5", post.ID)
	require.Equal(t, "Calendario Marzo 2026", post.SheetName)
	require.Equal(t, 5, post.RowIndex)
	require.Equal(t, "2026-03-10", post.Date)
	require.Equal(t, "15:00", post.Time)
	require.Equal(t, "reel", post.Type)
	require.Equal(t, "both", post.Platform)
	require.Equal(t, "https://lh3.googleusercontent.com/d/ABC123", post.ImageURL)
	require.Equal(t, "scheduled", post.Status)
	require.Equal(t, "Lanzamiento de la nueva marca", post.Description)
	require.Contains(t, post.Title, "Lanzamiento")
}

func TestPostFromRow_SkipsRowsWithoutDate(t *testing.T) {
	cols := ResolveColumns(calendarHeader)
	now := time.Now()

	require.Nil(t, PostFromRow("Feed", 2, []string{"", "12:00", "Mensaje"}, cols, now))
	require.Nil(t, PostFromRow("Feed", 3, []string{}, cols, now))
}

func TestPostFromRow_SkipsRowsWithoutMessage(t *testing.T) {
	cols := ResolveColumns(calendarHeader)
	require.Nil(t, PostFromRow("Feed", 4, []string{"2026-03-10", "12:00", ""}, cols, time.Now()))
}

func TestPostFromRow_TypeInference(t *testing.T) {
	cols := ResolveColumns(calendarHeader)
	now := time.Now()

	tests := []struct {
		typeCell string
		sheet    string
		want     string
	}{
		{"Reel educativo", "Calendario", "reel"},
		{"Carrusel", "Calendario", "carousel"},
		{"Historia", "Calendario", "story"},
		{"Educational post", "Calendario", "feed"},
		{"Humor", "Calendario", "feed"},
		{"", "Stories Marzo", "story"},
		{"", "Feed Marzo", "feed"},
		{"", "Calendario Marzo 2026", "feed"},
		{"algo raro", "Historias IG", "story"},
	}

	for _, tt := range tests {
		row := []string{"2026-03-10", "12:00", "Mensaje de prueba", "", tt.typeCell, "", "", ""}
		post := PostFromRow(tt.sheet, 2, row, cols, now)
		require.NotNil(t, post)
		require.Equal(t, tt.want, post.Type, "type cell %q sheet %q", tt.typeCell, tt.sheet)
	}
}

func TestBuildTitle_TruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("palabra ", 20)
	title := BuildTitle("feed", long)

	require.True(t, strings.HasSuffix(title, "..."))
	require.Less(t, len([]rune(title)), len([]rune(long)))

	short := BuildTitle("feed", "corto")
	require.Contains(t, short, "corto")
	require.False(t, strings.HasSuffix(short, "..."))
}

func TestPostFromRow_RaggedRowMissingTrailingCells(t *testing.T) {
	cols := ResolveColumns(calendarHeader)
	row := []string{"2026-03-22", "10:00", "Solo fecha hora y mensaje"}

	post := PostFromRow("Calendario Marzo 2026", 8, row, cols, time.Now())
	require.NotNil(t, post)
	require.Equal(t, "both", post.Platform)
	require.Equal(t, "", post.ImageURL)
	require.Equal(t, "feed", post.Type)
}
