package job

import (
	"context"
	"log/slog"
	"time"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/gsheets"
	"github.com/fofostudio/marketing-api/internal/repository"
)

// ReminderJob scans the current month's calendar and logs the posts due within
// the next 24 hours. It authenticates with the service account, so it runs
// without anyone logged in.
type ReminderJob struct {
	cfg config.Config
	cr  repository.CalendarRepository
}

func NewReminderJob(cfg config.Config, cr repository.CalendarRepository) *ReminderJob {
	return &ReminderJob{
		cfg: cfg,
		cr:  cr,
	}
}

func (c *ReminderJob) CheckUpcoming() {
	if c.cfg.GoogleServiceAccount == "" {
		return
	}

	ctx := context.Background()

	source, err := gsheets.ServiceAccountTokenSource(ctx, c.cfg.GoogleServiceAccount)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	token, err := source.Token()
	if err != nil {
		slog.Info(err.Error())
		return
	}

	now := time.Now()
	posts, err := c.cr.ListMonth(ctx, token.AccessToken, now.Year(), int(now.Month()))
	if err != nil {
		slog.Info(err.Error())
		return
	}

	horizon := now.Add(24 * time.Hour)
	for _, post := range posts {
		postTime := post.Time
		if postTime == "" {
			postTime = "00:00"
		}
		at, err := time.ParseInLocation("2006-01-02 15:04", post.Date+" "+postTime, now.Location())
		if err != nil {
			continue
		}
		if at.After(now) && at.Before(horizon) {
			slog.Info("post due soon",
				"post_id", post.ID,
				"title", post.Title,
				"scheduled_for", at.Format(time.RFC3339),
				"platform", post.Platform)
		}
	}
}
