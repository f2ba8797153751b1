package sheetcal

import "strings"

// ColumnMap holds the resolved column index for each recognized field of a
// sheet tab. An index of -1 means the tab has no matching column; callers fall
// back to an empty value for that field. The map is built once per sheet read,
// never per row.
type ColumnMap struct {
	Date        int
	Time        int
	Message     int
	Description int
	Type        int
	Status      int
	Platform    int
	Image       int
	Hashtags    int
}

// Header synonyms, Spanish first since that is what the production sheets use.
// Matching is by substring, so e.g. "Fecha de publicación" still resolves.
var (
	dateNames        = []string{"fecha", "date", "día", "dia"}
	timeNames        = []string{"hora", "time", "horario"}
	messageNames     = []string{"mensaje completo", "mensaje", "copy", "texto"}
	descriptionNames = []string{"descripción", "descripcion", "description"}
	typeNames        = []string{"tipo", "type", "formato", "format"}
	statusNames      = []string{"estado", "status"}
	platformNames    = []string{"plataforma", "plataformas", "platform", "red"}
	imageNames       = []string{"url imagen", "imagen", "image", "url", "asset", "pieza"}
	hashtagNames     = []string{"hashtags", "tags"}
)

// FindColumnIndex returns the index of the first header cell that contains any
// of the candidate names, testing candidates in priority order per cell.
// Returns -1 when no cell matches.
func FindColumnIndex(header []string, candidates []string) int {
	for i, cell := range header {
		lower := strings.ToLower(cell)
		for _, name := range candidates {
			if strings.Contains(lower, name) {
				return i
			}
		}
	}
	return -1
}

// ResolveColumns locates every recognized field in a header row.
func ResolveColumns(header []string) ColumnMap {
	return ColumnMap{
		Date:        FindColumnIndex(header, dateNames),
		Time:        FindColumnIndex(header, timeNames),
		Message:     FindColumnIndex(header, messageNames),
		Description: FindColumnIndex(header, descriptionNames),
		Type:        FindColumnIndex(header, typeNames),
		Status:      FindColumnIndex(header, statusNames),
		Platform:    FindColumnIndex(header, platformNames),
		Image:       FindColumnIndex(header, imageNames),
		Hashtags:    FindColumnIndex(header, hashtagNames),
	}
}

// cellAt reads a cell by resolved index, tolerating ragged rows and missing
// columns.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
