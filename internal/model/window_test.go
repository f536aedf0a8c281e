package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScanWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC)
	w := NewScanWindow(now)

	assert.Equal(t, "2024-03-01", w.Today.String())
	assert.Equal(t, "2024-02-29", w.Yesterday.String())

	tests := []struct {
		name     string
		ts       time.Time
		contains bool
		expired  bool
	}{
		{"today", time.Date(2024, 3, 1, 0, 1, 0, 0, time.UTC), true, false},
		{"yesterday start", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true, false},
		{"yesterday end", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), true, false},
		{"two days ago", time.Date(2024, 2, 28, 23, 59, 59, 0, time.UTC), false, true},
		{"tomorrow", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, w.Contains(tt.ts))
			assert.Equal(t, tt.expired, w.Expired(tt.ts))
		})
	}
}

func TestScanWindow_UsesUTC(t *testing.T) {
	// 23:30 on Mar 1 in UTC-5 is already Mar 2 in UTC.
	loc := time.FixedZone("EST", -5*3600)
	w := NewScanWindow(time.Date(2024, 3, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-03-02", w.Today.String())
	assert.Equal(t, "2024-03-01", w.Yesterday.String())
}
