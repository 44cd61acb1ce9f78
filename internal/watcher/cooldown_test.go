package watcher

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestShouldUpload_NoMatch(t *testing.T) {
	now := time.Now()

	// no qualifying detection never uploads, whatever the cooldown state
	if shouldUpload(false, now, time.Time{}, 5*time.Second) {
		t.Error("Expected no upload without a match, even on a fresh run")
	}
	if shouldUpload(false, now, now.Add(-time.Hour), 5*time.Second) {
		t.Error("Expected no upload without a match, even long after lastSent")
	}
}

func TestShouldUpload_FreshRun(t *testing.T) {
	// zero lastSent guarantees the very first match passes no matter
	// what the wall clock says
	times := []time.Time{
		time.Now(),
		time.Date(1971, 1, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, now := range times {
		if !shouldUpload(true, now, time.Time{}, 5*time.Second) {
			t.Errorf("Expected first match at %v to upload", now)
		}
	}
}

func TestShouldUpload_CooldownWindow(t *testing.T) {
	now := time.Now()
	cooldown := 5 * time.Second

	tests := []struct {
		name     string
		lastSent time.Time
		expected bool
	}{
		{"3s ago is inside the window", now.Add(-3 * time.Second), false},
		{"exactly 5s ago is still inside", now.Add(-5 * time.Second), false},
		{"6s ago is outside", now.Add(-6 * time.Second), true},
	}

	for _, tt := range tests {
		if got := shouldUpload(true, now, tt.lastSent, cooldown); got != tt.expected {
			t.Errorf("%s: shouldUpload = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestShouldUpload_AtMostOneWithinCooldown(t *testing.T) {
	// two qualifying frames within one cooldown window trigger at most
	// one upload attempt
	clk := clock.NewMock()
	cooldown := 5 * time.Second
	lastSent := time.Time{}

	uploads := 0
	for i := 0; i < 2; i++ {
		now := clk.Now()
		if shouldUpload(true, now, lastSent, cooldown) {
			uploads++
			lastSent = now
		}
		clk.Add(2 * time.Second) // t2 - t1 <= cooldown
	}

	if uploads != 1 {
		t.Errorf("Expected exactly 1 upload within the cooldown window, got %d", uploads)
	}
}

func TestShouldUpload_SeparateAttemptsPastCooldown(t *testing.T) {
	clk := clock.NewMock()
	cooldown := 5 * time.Second
	lastSent := time.Time{}

	uploads := 0
	for i := 0; i < 2; i++ {
		now := clk.Now()
		if shouldUpload(true, now, lastSent, cooldown) {
			uploads++
			lastSent = now
		}
		clk.Add(6 * time.Second) // t2 - t1 > cooldown
	}

	if uploads != 2 {
		t.Errorf("Expected 2 separate uploads past the cooldown, got %d", uploads)
	}
}
