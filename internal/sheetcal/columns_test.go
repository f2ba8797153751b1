package sheetcal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindColumnIndex(t *testing.T) {
	header := []string{"Fecha", "Hora", "Mensaje Completo", "Descripción", "Tipo", "Estado", "Plataformas", "URL Imagen"}

	require.Equal(t, 0, FindColumnIndex(header, dateNames))
	require.Equal(t, 1, FindColumnIndex(header, timeNames))
	require.Equal(t, 2, FindColumnIndex(header, messageNames))
	require.Equal(t, 4, FindColumnIndex(header, typeNames))
	require.Equal(t, 6, FindColumnIndex(header, platformNames))
	require.Equal(t, 7, FindColumnIndex(header, imageNames))
	require.Equal(t, -1, FindColumnIndex(header, hashtagNames))
}

func TestFindColumnIndex_EnglishHeaders(t *testing.T) {
	header := []string{"Date", "Time", "Copy", "Type", "Platform", "Image"}

	require.Equal(t, 0, FindColumnIndex(header, dateNames))
	require.Equal(t, 2, FindColumnIndex(header, messageNames))
	require.Equal(t, 4, FindColumnIndex(header, platformNames))
}

func TestFindColumnIndex_SubstringMatch(t *testing.T) {
	header := []string{"Fecha de publicación", "Hora estimada"}

	require.Equal(t, 0, FindColumnIndex(header, dateNames))
	require.Equal(t, 1, FindColumnIndex(header, timeNames))
}

func TestResolveColumns_MissingFieldsAreSentinel(t *testing.T) {
	cols := ResolveColumns([]string{"Fecha", "Mensaje"})

	require.Equal(t, 0, cols.Date)
	require.Equal(t, 1, cols.Message)
	require.Equal(t, -1, cols.Time)
	require.Equal(t, -1, cols.Platform)
	require.Equal(t, -1, cols.Image)
}

func TestCellAt_RaggedRows(t *testing.T) {
	row := []string{"2026-03-10", "15:00"}

	require.Equal(t, "15:00", cellAt(row, 1))
	require.Equal(t, "", cellAt(row, 5))
	require.Equal(t, "", cellAt(row, -1))
}
