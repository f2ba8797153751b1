package gsheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is the narrow surface the calendar repository needs from the
// spreadsheet service. The caller's bearer token is passed per call; this
// package never holds credentials.
type Client interface {
	ListTabs(ctx context.Context, token string) ([]string, error)
	ReadRange(ctx context.Context, token, readRange string) ([][]string, error)
	WriteRange(ctx context.Context, token, writeRange string, rows [][]string) error
	AppendRow(ctx context.Context, token, sheetName string, values []string) (string, error)
	DeleteRow(ctx context.Context, token, sheetName string, rowIndex int) error
}

type client struct {
	spreadsheetID string
}

func NewClient(spreadsheetID string) Client {
	return &client{spreadsheetID: spreadsheetID}
}

func (c *client) service(ctx context.Context, token string) (*sheets.Service, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return sheets.NewService(ctx, option.WithHTTPClient(httpClient))
}

func (c *client) ListTabs(ctx context.Context, token string) ([]string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets(properties(title))").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing sheet tabs: %w", err)
	}

	tabs := make([]string, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			tabs = append(tabs, s.Properties.Title)
		}
	}
	return tabs, nil
}

func (c *client) ReadRange(ctx context.Context, token, readRange string) ([][]string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *client) WriteRange(ctx context.Context, token, writeRange string, rows [][]string) error {
	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	_, err = svc.Spreadsheets.Values.
		Update(c.spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing range %s: %w", writeRange, err)
	}
	return nil
}

func (c *client) AppendRow(ctx context.Context, token, sheetName string, values []string) (string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return "", err
	}

	cells := make([]interface{}, 0, len(values))
	for _, v := range values {
		cells = append(cells, v)
	}

	resp, err := svc.Spreadsheets.Values.
		Append(c.spreadsheetID, RangeAllColumns(sheetName), &sheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("appending to %s: %w", sheetName, err)
	}

	if resp.Updates != nil {
		return resp.Updates.UpdatedRange, nil
	}
	return "", nil
}

// DeleteRow removes the physical row, shifting every later row up by one.
// rowIndex is 1-based; the DeleteDimension request wants 0-based indices.
func (c *client) DeleteRow(ctx context.Context, token, sheetName string, rowIndex int) error {
	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	meta, err := svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets(properties(sheetId,title))").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("resolving sheet id for %s: %w", sheetName, err)
	}

	var sheetID int64 = -1
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == sheetName {
			sheetID = s.Properties.SheetId
			break
		}
	}
	if sheetID == -1 {
		return fmt.Errorf("sheet %q not found", sheetName)
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}

	if _, err := svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting row %d from %s: %w", rowIndex, sheetName, err)
	}
	return nil
}

// RangeAllColumns builds the A:Z range for a tab, quoting names that contain
// spaces or other characters A1 notation trips on.
func RangeAllColumns(sheetName string) string {
	return quoteSheetName(sheetName) + "!A:Z"
}

// RangeRow builds the canonical 8-column range for one physical row.
func RangeRow(sheetName string, rowIndex int) string {
	return fmt.Sprintf("%s!A%d:H%d", quoteSheetName(sheetName), rowIndex, rowIndex)
}

// RangeCell builds the range for a single cell by 0-based column index.
func RangeCell(sheetName string, colIndex, rowIndex int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheetName(sheetName), ColumnLetter(colIndex), rowIndex)
}

// RangeHeader builds the range covering the header row of a tab.
func RangeHeader(sheetName string) string {
	return quoteSheetName(sheetName) + "!A1:Z1"
}

// ColumnLetter converts a 0-based column index into its A1 letter. The sheets
// this serves never exceed 26 columns.
func ColumnLetter(index int) string {
	return string(rune('A' + index))
}

func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// ServiceAccountTokenSource builds a token source from service-account JSON,
// used by background jobs that run without an operator token.
func ServiceAccountTokenSource(ctx context.Context, credentialsJSON string) (oauth2.TokenSource, error) {
	conf, err := google.JWTConfigFromJSON([]byte(credentialsJSON), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}
	return conf.TokenSource(ctx), nil
}
