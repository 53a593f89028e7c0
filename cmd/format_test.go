package cmd

import (
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1024 * 1024, "1.00MB"},
		{5 * 1024 * 1024, "5.00MB"},
	}

	for _, tt := range tests {
		if got := formatSize(tt.bytes); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path   string
		maxLen int
	}{
		{"/short", 40},
		{"/exactly/forty/characters/long/path/dirx", 40},
		{"/a/very/long/path/that/needs/to/be/trimmed/down", 20},
	}

	for _, tt := range tests {
		got := truncatePath(tt.path, tt.maxLen)
		if len(got) > tt.maxLen {
			t.Errorf("truncatePath(%q, %d) = %q, longer than limit", tt.path, tt.maxLen, got)
		}
		if len(tt.path) <= tt.maxLen && got != tt.path {
			t.Errorf("truncatePath(%q, %d) = %q, short path should be untouched", tt.path, tt.maxLen, got)
		}
	}
}

func TestTruncatePath_KeepsTail(t *testing.T) {
	got := truncatePath("/home/user/projects/deep/nested/dir", 20)
	if got[:3] != "..." {
		t.Errorf("truncated path should start with ellipsis, got %q", got)
	}
	if got[len(got)-3:] != "dir" {
		t.Errorf("truncated path should keep the tail, got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Time{}); got != "N/A" {
		t.Errorf("formatTime(zero) = %q, want N/A", got)
	}

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	if got := formatTime(ts); got != "2026-03-14 09:26:53" {
		t.Errorf("formatTime = %q", got)
	}
}
