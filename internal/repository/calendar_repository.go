package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fofostudio/marketing-api/internal/gsheets"
	"github.com/fofostudio/marketing-api/internal/models"
	"github.com/fofostudio/marketing-api/internal/sheetcal"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

var (
	ErrMissingToken = errors.New("missing access token")
	ErrPostNotFound = errors.New("post not found")
)

// Fixed offsets of the canonical 8-column layout:
// Fecha | Hora | Mensaje Completo | Descripción | Tipo | Estado | Plataformas | URL Imagen
const (
	colDate = iota
	colTime
	colMessage
	colDescription
	colType
	colStatus
	colPlatform
	colImage
	canonicalColumns
)

// CalendarRepository reads and mutates calendar posts stored as spreadsheet
// rows. Every operation takes the operator's bearer token; nothing is cached
// between calls, the spreadsheet is the sole source of truth.
type CalendarRepository interface {
	ListMonth(ctx context.Context, token string, year, month int) ([]*models.Post, error)
	GetByID(ctx context.Context, token, id string) (*models.Post, error)
	Update(ctx context.Context, token, id string, fields *transfer.PostUpdate) (*models.Post, error)
	UpdateImageURL(ctx context.Context, token, id, imageURL string) error
	UpdateDate(ctx context.Context, token, id, newDate string) error
	Create(ctx context.Context, token string, pc *transfer.PostCreation) (*models.Post, error)
	DeleteByID(ctx context.Context, token, id string) error
}

type calendarRepository struct {
	sheets       gsheets.Client
	defaultSheet string
}

func NewCalendarRepository(sheets gsheets.Client, defaultSheet string) CalendarRepository {
	return &calendarRepository{sheets: sheets, defaultSheet: defaultSheet}
}

func (r *calendarRepository) ListMonth(ctx context.Context, token string, year, month int) ([]*models.Post, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	tabs, err := r.sheets.ListTabs(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}

	monthPrefix := fmt.Sprintf("%04d-%02d", year, month)
	now := time.Now()

	posts := make([]*models.Post, 0)
	for _, tab := range tabs {
		rows, err := r.sheets.ReadRange(ctx, token, gsheets.RangeAllColumns(tab))
		if err != nil {
			// A single malformed or unreadable tab must not blank the whole
			// calendar; it just contributes zero posts.
			slog.Error("skipping unreadable tab", "tab", tab, "error", err)
			continue
		}
		if len(rows) < 2 {
			continue
		}

		cols := sheetcal.ResolveColumns(rows[0])
		for i := 1; i < len(rows); i++ {
			post := sheetcal.PostFromRow(tab, i+1, rows[i], cols, now)
			if post == nil {
				continue
			}
			if !strings.HasPrefix(post.Date, monthPrefix) {
				continue
			}
			posts = append(posts, post)
		}
	}

	return posts, nil
}

func (r *calendarRepository) GetByID(ctx context.Context, token, id string) (*models.Post, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	sheetName, rowIndex, err := sheetcal.DecodePostID(id, r.defaultSheet)
	if err != nil {
		return nil, err
	}

	rows, err := r.sheets.ReadRange(ctx, token, gsheets.RangeAllColumns(sheetName))
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheetName, err)
	}

	// row 1 is the header, never a post
	if rowIndex < 2 || len(rows) < 2 || rowIndex > len(rows) {
		return nil, ErrPostNotFound
	}

	cols := sheetcal.ResolveColumns(rows[0])
	post := sheetcal.PostFromRow(sheetName, rowIndex, rows[rowIndex-1], cols, time.Now())
	if post == nil {
		return nil, ErrPostNotFound
	}
	post.ID = id

	return post, nil
}

// Update merges the caller-supplied fields over the current row and writes the
// merged 8-column row back in one range write. The Estado cell is carried over
// verbatim: status is a derived read-time value and is never settable here.
func (r *calendarRepository) Update(ctx context.Context, token, id string, fields *transfer.PostUpdate) (*models.Post, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	sheetName, rowIndex, err := sheetcal.DecodePostID(id, r.defaultSheet)
	if err != nil {
		return nil, err
	}

	rowRange := gsheets.RangeRow(sheetName, rowIndex)
	rows, err := r.sheets.ReadRange(ctx, token, rowRange)
	if err != nil {
		return nil, fmt.Errorf("reading current row: %w", err)
	}

	var current []string
	if len(rows) > 0 {
		current = rows[0]
	}

	existing := func(col int) string {
		if col < len(current) {
			return current[col]
		}
		return ""
	}
	pick := func(supplied *string, col int) string {
		if supplied != nil {
			return *supplied
		}
		return existing(col)
	}

	status := existing(colStatus)
	if status == "" {
		status = models.PostStatusScheduled
	}

	merged := make([]string, canonicalColumns)
	merged[colDate] = pick(fields.Date, colDate)
	merged[colTime] = pick(fields.Time, colTime)
	merged[colMessage] = pick(fields.Title, colMessage)
	merged[colDescription] = pick(fields.Description, colDescription)
	merged[colType] = pick(fields.Type, colType)
	merged[colStatus] = status
	merged[colPlatform] = pick(fields.Platform, colPlatform)
	merged[colImage] = pick(fields.ImageURL, colImage)

	if err := r.sheets.WriteRange(ctx, token, rowRange, [][]string{merged}); err != nil {
		return nil, fmt.Errorf("writing merged row: %w", err)
	}

	return postFromCanonicalRow(id, sheetName, rowIndex, merged), nil
}

// UpdateImageOnly path: single-cell write at the fixed image column, no
// read-merge cycle. Used by the upload and regeneration flows.
func (r *calendarRepository) UpdateImageURL(ctx context.Context, token, id, imageURL string) error {
	if token == "" {
		return ErrMissingToken
	}

	sheetName, rowIndex, err := sheetcal.DecodePostID(id, r.defaultSheet)
	if err != nil {
		return err
	}

	cell := gsheets.RangeCell(sheetName, colImage, rowIndex)
	if err := r.sheets.WriteRange(ctx, token, cell, [][]string{{imageURL}}); err != nil {
		return fmt.Errorf("writing image cell: %w", err)
	}
	return nil
}

// UpdateDate resolves the date column from the header instead of assuming the
// fixed layout, since tabs may order their columns differently. Used by
// drag-and-drop rescheduling.
func (r *calendarRepository) UpdateDate(ctx context.Context, token, id, newDate string) error {
	if token == "" {
		return ErrMissingToken
	}

	sheetName, rowIndex, err := sheetcal.DecodePostID(id, r.defaultSheet)
	if err != nil {
		return err
	}

	header, err := r.sheets.ReadRange(ctx, token, gsheets.RangeHeader(sheetName))
	if err != nil {
		return fmt.Errorf("reading header row: %w", err)
	}

	var headerRow []string
	if len(header) > 0 {
		headerRow = header[0]
	}

	cols := sheetcal.ResolveColumns(headerRow)
	if cols.Date < 0 {
		return fmt.Errorf("date column not found in sheet %q", sheetName)
	}

	cell := gsheets.RangeCell(sheetName, cols.Date, rowIndex)
	if err := r.sheets.WriteRange(ctx, token, cell, [][]string{{newDate}}); err != nil {
		return fmt.Errorf("writing date cell: %w", err)
	}
	return nil
}

func (r *calendarRepository) Create(ctx context.Context, token string, pc *transfer.PostCreation) (*models.Post, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	sheetName := r.defaultSheet

	row := make([]string, canonicalColumns)
	row[colDate] = pc.Date
	row[colTime] = pc.Time
	if row[colTime] == "" {
		row[colTime] = "12:00"
	}
	row[colMessage] = pc.Title
	row[colDescription] = pc.Description
	row[colType] = pc.Type
	row[colStatus] = models.PostStatusScheduled
	row[colPlatform] = pc.Platform
	if row[colPlatform] == "" {
		row[colPlatform] = models.PlatformBoth
	}
	row[colImage] = pc.AssetURL

	updatedRange, err := r.sheets.AppendRow(ctx, token, sheetName, row)
	if err != nil {
		return nil, fmt.Errorf("appending post row: %w", err)
	}

	post := postFromCanonicalRow("", sheetName, 0, row)
	if rowIndex := rowFromUpdatedRange(updatedRange); rowIndex > 0 {
		post.RowIndex = rowIndex
		post.ID = sheetcal.EncodePostID(sheetName, rowIndex)
	}
	return post, nil
}

func (r *calendarRepository) DeleteByID(ctx context.Context, token, id string) error {
	if token == "" {
		return ErrMissingToken
	}

	sheetName, rowIndex, err := sheetcal.DecodePostID(id, r.defaultSheet)
	if err != nil {
		return err
	}

	if err := r.sheets.DeleteRow(ctx, token, sheetName, rowIndex); err != nil {
		return fmt.Errorf("deleting row: %w", err)
	}
	return nil
}

func postFromCanonicalRow(id, sheetName string, rowIndex int, row []string) *models.Post {
	return &models.Post{
		ID:          id,
		SheetName:   sheetName,
		RowIndex:    rowIndex,
		Date:        row[colDate],
		Time:        row[colTime],
		Title:       row[colMessage],
		Description: row[colDescription],
		Type:        row[colType],
		Platform:    row[colPlatform],
		ImageURL:    row[colImage],
		Status:      sheetcal.InferStatus(row[colDate], sheetcal.NormalizeTime(row[colTime]), time.Now()),
	}
}

var updatedRangeRow = regexp.MustCompile(`!A(\d+)`)

// rowFromUpdatedRange pulls the assigned row index out of an append response
// range like "'Calendario Marzo 2026'!A12:H12". Best effort; callers tolerate
// zero.
func rowFromUpdatedRange(updatedRange string) int {
	m := updatedRangeRow.FindStringSubmatch(updatedRange)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
