package sheetcal

import (
	"time"

	"github.com/fofostudio/marketing-api/internal/models"
)

// graceWindow keeps a post "scheduled" for a while after its slot has passed,
// so it does not read as published before the operator confirms the actual
// publish action.
const graceWindow = 2 * time.Hour

// InferStatus derives scheduled/published from the post's date and time
// relative to now. Empty or unparseable dates fail open to scheduled.
func InferStatus(date, timeStr string, now time.Time) string {
	if date == "" {
		return models.PostStatusScheduled
	}
	if timeStr == "" {
		timeStr = "00:00"
	}

	postAt, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, now.Location())
	if err != nil {
		return models.PostStatusScheduled
	}

	if postAt.Before(now.Add(-graceWindow)) {
		return models.PostStatusPublished
	}
	return models.PostStatusScheduled
}
