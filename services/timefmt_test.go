package services

import (
	"testing"
	"time"

	"pingly_server/testfixtures"
)

func TestFormatRelativeTime(t *testing.T) {
	now := testfixtures.ReferenceTime()
	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"same instant", 0, "just now"},
		{"under a minute", 45 * time.Second, "just now"},
		{"exactly a minute", time.Minute, "1m ago"},
		{"minutes floor", 5*time.Minute + 59*time.Second, "5m ago"},
		{"last minute of the hour", 59 * time.Minute, "59m ago"},
		{"hours floor", 90 * time.Minute, "1h ago"},
		{"last hour of the day", 23*time.Hour + 59*time.Minute, "23h ago"},
		{"older than a day", 25 * time.Hour, "3/13/2025"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRelativeTime(now, now.Add(-tc.ago)); got != tc.want {
				t.Fatalf("FormatRelativeTime(-%s) = %q, want %q", tc.ago, got, tc.want)
			}
		})
	}
}
