package sheetcal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	timePattern    = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)?`)
	driveFileIDPat = regexp.MustCompile(`/file/d/([^/?]+)`)
	driveQueryIDPat = regexp.MustCompile(`[?&]id=([^&]+)`)
)

const driveImageHost = "https://lh3.googleusercontent.com/d/"

// NormalizeTime converts free-text times like "3:05 PM" to zero-padded 24-hour
// "HH:MM". Input that does not contain a recognizable time is returned
// unchanged; empty input yields empty output.
func NormalizeTime(s string) string {
	if s == "" {
		return ""
	}

	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil || hours > 23 {
		return s
	}
	minutes := m[2]
	meridiem := strings.ToUpper(m[3])

	if meridiem == "PM" && hours < 12 {
		hours += 12
	}
	if meridiem == "AM" && hours == 12 {
		hours = 0
	}

	return fmt.Sprintf("%02d:%s", hours, minutes)
}

// NormalizePlatform reduces hand-written platform cells ("FB + IG",
// "Instagram", ...) to both/facebook/instagram. Anything unrecognized,
// including empty input, defaults to both: a post not explicitly restricted is
// assumed cross-posted.
func NormalizePlatform(s string) string {
	lower := strings.ToLower(s)

	switch {
	case strings.Contains(lower, "fb") && strings.Contains(lower, "ig"):
		return "both"
	case strings.Contains(lower, "facebook") && strings.Contains(lower, "instagram"):
		return "both"
	case strings.Contains(lower, "facebook"):
		return "facebook"
	case strings.Contains(lower, "instagram"), strings.Contains(lower, "ig"):
		return "instagram"
	default:
		return "both"
	}
}

// NormalizeDriveURL rewrites Drive file-view and content-server URLs to the
// direct-view googleusercontent form, which renders for both images and video
// thumbnails. Non-Drive URLs (external CDNs) pass through unchanged, as does
// anything already on the canonical host. Idempotent.
func NormalizeDriveURL(url string) string {
	if url == "" {
		return ""
	}

	if m := driveFileIDPat.FindStringSubmatch(url); m != nil {
		return driveImageHost + m[1]
	}
	if m := driveQueryIDPat.FindStringSubmatch(url); m != nil {
		return driveImageHost + m[1]
	}
	if strings.Contains(url, "lh3.googleusercontent.com") {
		return url
	}
	return url
}
