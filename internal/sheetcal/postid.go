package sheetcal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPostID reports a post id that cannot be decoded in any of the
// accepted formats.
var ErrInvalidPostID = errors.New("invalid post id format")

// EncodePostID builds the canonical id for a row: "{sheetName}_{rowIndex}".
func EncodePostID(sheetName string, rowIndex int) string {
	return fmt.Sprintf("%s_%d", sheetName, rowIndex)
}

// DecodePostID parses a post id back into (sheetName, rowIndex).
//
// Canonical form is "{sheetName}_{rowIndex}" split on the LAST underscore,
// since sheet names regularly contain underscores themselves. Two legacy forms
// issued by earlier frontend builds are still accepted:
//
//	sheet-{sheetName}-{rowIndex}
//	post-{rowIndex}
//
// along with bare integer ids. The legacy "post-" and bare forms carry no
// sheet name, so those decode against defaultSheet.
//
// The canonical parse runs first: a tab can legitimately be named with a
// leading "sheet-" or "post-" token, and its encoded ids must round-trip.
// Legacy ids never contain an underscore before the row suffix, so they
// always fall through to their own branches.
func DecodePostID(id, defaultSheet string) (string, int, error) {
	if id == "" {
		return "", 0, ErrInvalidPostID
	}

	if idx := strings.LastIndex(id, "_"); idx > 0 {
		if row, err := strconv.Atoi(id[idx+1:]); err == nil && row >= 1 {
			return id[:idx], row, nil
		}
	}

	if strings.HasPrefix(id, "sheet-") {
		parts := strings.Split(id, "-")
		row, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil || row < 1 {
			return "", 0, ErrInvalidPostID
		}
		sheet := strings.Join(parts[1:len(parts)-1], "-")
		if sheet == "" {
			sheet = defaultSheet
		}
		return sheet, row, nil
	}

	if strings.HasPrefix(id, "post-") {
		row, err := strconv.Atoi(strings.TrimPrefix(id, "post-"))
		if err != nil || row < 1 {
			return "", 0, ErrInvalidPostID
		}
		return defaultSheet, row, nil
	}

	if row, err := strconv.Atoi(id); err == nil {
		if row < 1 {
			return "", 0, ErrInvalidPostID
		}
		return defaultSheet, row, nil
	}

	return "", 0, ErrInvalidPostID
}
