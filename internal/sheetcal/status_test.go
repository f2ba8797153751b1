package sheetcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInferStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		time string
		want string
	}{
		{"future post", "2026-03-20", "10:00", "scheduled"},
		{"past beyond grace window", "2026-03-15", "09:00", "published"},
		{"within grace window", "2026-03-15", "11:00", "scheduled"},
		{"exactly now", "2026-03-15", "12:00", "scheduled"},
		{"empty date fails open", "", "10:00", "scheduled"},
		{"garbage date fails open", "el martes", "10:00", "scheduled"},
		{"empty time defaults to midnight", "2026-03-15", "", "published"},
		{"old post", "2025-01-01", "09:00", "published"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, InferStatus(tt.date, tt.time, now))
		})
	}
}

func TestInferStatus_Monotonic(t *testing.T) {
	// Moving the date further into the past must never flip published back to
	// scheduled.
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	sawPublished := false
	for day := 10; day >= 1; day-- {
		date := time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		status := InferStatus(date, "09:00", now)
		if status == "published" {
			sawPublished = true
		}
		if sawPublished {
			require.Equal(t, "published", status, "date %s", date)
		}
	}
	require.True(t, sawPublished)
}

func TestInferStatus_Pure(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	first := InferStatus("2026-03-10", "09:00", now)
	second := InferStatus("2026-03-10", "09:00", now)
	require.Equal(t, first, second)
}
