package models

import (
	"testing"
	"time"
)

func TestPercentage(t *testing.T) {
	testCases := []struct {
		score, total, expected int
	}{
		{5, 5, 100},
		{2, 5, 40},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{0, 0, 0},
	}
	for _, tc := range testCases {
		if got := Percentage(tc.score, tc.total); got != tc.expected {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.expected)
		}
	}
}

func TestFormatTimeTaken(t *testing.T) {
	testCases := []struct {
		seconds  int
		expected string
	}{
		{0, "0m 0s"},
		{59, "0m 59s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
		{-3, "0m 0s"},
	}
	for _, tc := range testCases {
		if got := FormatTimeTaken(tc.seconds); got != tc.expected {
			t.Errorf("FormatTimeTaken(%d) = %q, want %q", tc.seconds, got, tc.expected)
		}
	}
}

func TestBuildResultSummary(t *testing.T) {
	submittedAt := time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC)
	summary := BuildResultSummary(5, 5, 48, submittedAt)

	if summary.Percentage != 100 {
		t.Errorf("expected 100%%, got %d", summary.Percentage)
	}
	if summary.IncorrectAnswers != 0 {
		t.Errorf("expected 0 incorrect, got %d", summary.IncorrectAnswers)
	}
	if summary.TimeTaken != "0m 48s" {
		t.Errorf("expected \"0m 48s\", got %q", summary.TimeTaken)
	}
	if !summary.SubmittedAt.Equal(submittedAt) {
		t.Errorf("expected submittedAt %v, got %v", submittedAt, summary.SubmittedAt)
	}
}
