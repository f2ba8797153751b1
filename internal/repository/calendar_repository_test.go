package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fofostudio/marketing-api/internal/sheetcal"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

const testDefaultSheet = "Calendario Marzo 2026"

// fakeSheets implements gsheets.Client over in-memory rows, understanding the
// range shapes the repository issues: A:Z, A1:Z1, A{r}:H{r} and single cells.
type fakeSheets struct {
	tabs     []string
	rows     map[string][][]string
	failTabs map[string]bool

	writes  map[string][][]string
	deleted []string
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{
		rows:     map[string][][]string{},
		failTabs: map[string]bool{},
		writes:   map[string][][]string{},
	}
}

var rangePattern = regexp.MustCompile(`^'(.+)'!(.+)$`)
var rowRangePattern = regexp.MustCompile(`^A(\d+):H(\d+)$`)

func (f *fakeSheets) parse(rng string) (tab, spec string) {
	m := rangePattern.FindStringSubmatch(rng)
	if m == nil {
		return "", rng
	}
	return m[1], m[2]
}

func (f *fakeSheets) ListTabs(_ context.Context, _ string) ([]string, error) {
	return f.tabs, nil
}

func (f *fakeSheets) ReadRange(_ context.Context, _ string, rng string) ([][]string, error) {
	tab, spec := f.parse(rng)
	if f.failTabs[tab] {
		return nil, errors.New("upstream read failure")
	}
	rows := f.rows[tab]

	switch {
	case spec == "A:Z":
		return rows, nil
	case spec == "A1:Z1":
		if len(rows) == 0 {
			return nil, nil
		}
		return rows[:1], nil
	default:
		m := rowRangePattern.FindStringSubmatch(spec)
		if m == nil {
			return nil, fmt.Errorf("unsupported range %q", rng)
		}
		var r int
		fmt.Sscanf(m[1], "%d", &r)
		if r > len(rows) {
			return nil, nil
		}
		return [][]string{rows[r-1]}, nil
	}
}

func (f *fakeSheets) WriteRange(_ context.Context, _ string, rng string, rows [][]string) error {
	f.writes[rng] = rows
	return nil
}

func (f *fakeSheets) AppendRow(_ context.Context, _ string, sheetName string, values []string) (string, error) {
	f.rows[sheetName] = append(f.rows[sheetName], values)
	row := len(f.rows[sheetName])
	return fmt.Sprintf("'%s'!A%d:H%d", sheetName, row, row), nil
}

func (f *fakeSheets) DeleteRow(_ context.Context, _ string, sheetName string, rowIndex int) error {
	f.deleted = append(f.deleted, fmt.Sprintf("%s:%d", sheetName, rowIndex))
	return nil
}

var calendarHeader = []string{"Fecha", "Hora", "Mensaje Completo", "Descripción", "Tipo", "Estado", "Plataformas", "URL Imagen"}

func seededRepo() (*fakeSheets, CalendarRepository) {
	fake := newFakeSheets()
	fake.tabs = []string{"Calendario Marzo 2026", "Stories Marzo"}
	fake.rows["Calendario Marzo 2026"] = [][]string{
		calendarHeader,
		{"2026-03-05", "12:00 PM", "Tips de diseño web", "", "Feed", "scheduled", "FB + IG", ""},
		{"", "10:00", "Fila sin fecha", "", "Feed", "", "", ""},
		{"2026-04-02", "09:00", "Post de abril", "", "Feed", "", "", ""},
		{"2026-03-10", "3:00 PM", "Lanzamiento reel", "", "Reel", "scheduled", "IG", "https://drive.google.com/file/d/ABC123/view"},
	}
	fake.rows["Stories Marzo"] = [][]string{
		{"Fecha", "Hora", "Copy"},
		{"2026-03-07", "18:00", "Behind the scenes"},
	}
	return fake, NewCalendarRepository(fake, testDefaultSheet)
}

func TestListMonth(t *testing.T) {
	_, repo := seededRepo()

	posts, err := repo.ListMonth(context.Background(), "tok", 2026, 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	for _, p := range posts {
		require.NotEmpty(t, p.Date)
		require.Equal(t, "2026-03", p.Date[:7])
	}

	// row order within tab, tab enumeration order across tabs
	require.Equal(t, "Calendario Marzo 2026_2", posts[0].ID)
	require.Equal(t, "Calendario Marzo 2026_5", posts[1].ID)
	require.Equal(t, "Stories Marzo_2", posts[2].ID)
	require.Equal(t, "story", posts[2].Type)
	require.Equal(t, "15:00", posts[1].Time)
	require.Equal(t, "instagram", posts[1].Platform)
}

func TestListMonth_UnreadableTabContributesNothing(t *testing.T) {
	fake, repo := seededRepo()
	fake.failTabs["Calendario Marzo 2026"] = true

	posts, err := repo.ListMonth(context.Background(), "tok", 2026, 3)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Stories Marzo_2", posts[0].ID)
}

func TestListMonth_MissingToken(t *testing.T) {
	_, repo := seededRepo()
	_, err := repo.ListMonth(context.Background(), "", 2026, 3)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestGetByID(t *testing.T) {
	_, repo := seededRepo()

	post, err := repo.GetByID(context.Background(), "tok", "Calendario Marzo 2026_5")
	require.NoError(t, err)
	require.Equal(t, "Calendario Marzo 2026_5", post.ID)
	require.Equal(t, "reel", post.Type)
	require.Equal(t, "https://lh3.googleusercontent.com/d/ABC123", post.ImageURL)
}

func TestGetByID_NotFound(t *testing.T) {
	_, repo := seededRepo()

	_, err := repo.GetByID(context.Background(), "tok", "Calendario Marzo 2026_99")
	require.ErrorIs(t, err, ErrPostNotFound)

	// rows with no date never materialize
	_, err = repo.GetByID(context.Background(), "tok", "Calendario Marzo 2026_3")
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetByID_HeaderRowIsNotAPost(t *testing.T) {
	_, repo := seededRepo()

	_, err := repo.GetByID(context.Background(), "tok", "Calendario Marzo 2026_1")
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetByID_InvalidID(t *testing.T) {
	_, repo := seededRepo()
	_, err := repo.GetByID(context.Background(), "tok", "nounderscore")
	require.ErrorIs(t, err, sheetcal.ErrInvalidPostID)
}

func TestUpdate_MergesOverExistingRow(t *testing.T) {
	fake, repo := seededRepo()

	title := "Nuevo mensaje"
	post, err := repo.Update(context.Background(), "tok", "Calendario Marzo 2026_2", &transfer.PostUpdate{Title: &title})
	require.NoError(t, err)

	written := fake.writes["'Calendario Marzo 2026'!A2:H2"]
	require.Len(t, written, 1)
	merged := written[0]

	require.Equal(t, "2026-03-05", merged[0])
	require.Equal(t, "12:00 PM", merged[1])
	require.Equal(t, "Nuevo mensaje", merged[2])
	require.Equal(t, "Feed", merged[4])
	require.Equal(t, "scheduled", merged[5])
	require.Equal(t, "FB + IG", merged[6])

	require.Equal(t, "Nuevo mensaje", post.Title)
	require.Equal(t, "2026-03-05", post.Date)
}

func TestUpdate_StatusCellPreservedVerbatim(t *testing.T) {
	fake, repo := seededRepo()
	fake.rows["Calendario Marzo 2026"][1][5] = "publicado manualmente"

	date := "2026-03-20"
	_, err := repo.Update(context.Background(), "tok", "Calendario Marzo 2026_2", &transfer.PostUpdate{Date: &date})
	require.NoError(t, err)

	merged := fake.writes["'Calendario Marzo 2026'!A2:H2"][0]
	require.Equal(t, "publicado manualmente", merged[5])
	require.Equal(t, "2026-03-20", merged[0])
}

func TestUpdateImageURL_WritesFixedCell(t *testing.T) {
	fake, repo := seededRepo()

	err := repo.UpdateImageURL(context.Background(), "tok", "Calendario Marzo 2026_5", "https://lh3.googleusercontent.com/d/NEW")
	require.NoError(t, err)

	written := fake.writes["'Calendario Marzo 2026'!H5"]
	require.Equal(t, [][]string{{"https://lh3.googleusercontent.com/d/NEW"}}, written)
}

func TestUpdateDate_ResolvesColumnFromHeader(t *testing.T) {
	fake := newFakeSheets()
	// date column deliberately not in position A
	fake.rows["Plan"] = [][]string{
		{"Hora", "Fecha", "Mensaje"},
		{"10:00", "2026-03-01", "Mensaje"},
	}
	repo := NewCalendarRepository(fake, testDefaultSheet)

	err := repo.UpdateDate(context.Background(), "tok", "Plan_2", "2026-03-09")
	require.NoError(t, err)

	written := fake.writes["'Plan'!B2"]
	require.Equal(t, [][]string{{"2026-03-09"}}, written)
}

func TestCreate_AppendsWithDefaults(t *testing.T) {
	fake, repo := seededRepo()

	post, err := repo.Create(context.Background(), "tok", &transfer.PostCreation{
		AssetURL: "https://lh3.googleusercontent.com/d/ASSET1",
		Date:     "2026-03-25",
		Title:    "Post desde asset",
		Type:     "feed",
	})
	require.NoError(t, err)

	appended := fake.rows[testDefaultSheet][len(fake.rows[testDefaultSheet])-1]
	require.Equal(t, "2026-03-25", appended[0])
	require.Equal(t, "12:00", appended[1])
	require.Equal(t, "scheduled", appended[5])
	require.Equal(t, "both", appended[6])
	require.Equal(t, "https://lh3.googleusercontent.com/d/ASSET1", appended[7])

	require.Equal(t, 6, post.RowIndex)
	require.Equal(t, "Calendario Marzo 2026_6", post.ID)
}

func TestDeleteByID(t *testing.T) {
	fake, repo := seededRepo()

	err := repo.DeleteByID(context.Background(), "tok", "Calendario Marzo 2026_3")
	require.NoError(t, err)
	require.Equal(t, []string{"Calendario Marzo 2026:3"}, fake.deleted)
}

func TestDeleteByID_InvalidID(t *testing.T) {
	_, repo := seededRepo()
	err := repo.DeleteByID(context.Background(), "tok", "")
	require.ErrorIs(t, err, sheetcal.ErrInvalidPostID)
}

func TestRowFromUpdatedRange(t *testing.T) {
	require.Equal(t, 12, rowFromUpdatedRange("'Calendario Marzo 2026'!A12:H12"))
	require.Equal(t, 0, rowFromUpdatedRange(""))
	require.Equal(t, 0, rowFromUpdatedRange("garbage"))
}
