package sheetcal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"12:00 PM", "12:00"},
		{"12:00 AM", "00:00"},
		{"1:05 PM", "13:05"},
		{"3:00 pm", "15:00"},
		{"9:30 AM", "09:30"},
		{"15:00", "15:00"},
		{"7:45", "07:45"},
		{"a las 6:00 PM aprox", "18:00"},
		{"mediodía", "mediodía"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeTime(tt.input), "input %q", tt.input)
	}
}

func TestNormalizePlatform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "both"},
		{"FB + IG", "both"},
		{"Facebook e Instagram", "both"},
		{"Facebook", "facebook"},
		{"Instagram", "instagram"},
		{"IG", "instagram"},
		{"solo ig stories", "instagram"},
		{"twitter", "both"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizePlatform(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeDriveURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "file view link",
			input: "https://drive.google.com/file/d/ABC123/view?usp=drivesdk",
			want:  "https://lh3.googleusercontent.com/d/ABC123",
		},
		{
			name:  "uc content link",
			input: "https://drive.google.com/uc?export=view&id=XYZ789",
			want:  "https://lh3.googleusercontent.com/d/XYZ789",
		},
		{
			name:  "already canonical",
			input: "https://lh3.googleusercontent.com/d/ABC123",
			want:  "https://lh3.googleusercontent.com/d/ABC123",
		},
		{
			name:  "external cdn passes through",
			input: "https://cdn.example.com/images/pic.png",
			want:  "https://cdn.example.com/images/pic.png",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDriveURL(tt.input)
			require.Equal(t, tt.want, got)
			// normalization is idempotent
			require.Equal(t, got, NormalizeDriveURL(got))
		})
	}
}
