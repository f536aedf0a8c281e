package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// ScanWindow is the two calendar days (UTC) a reward must fall in to be
// eligible.
type ScanWindow struct {
	Today     civil.Date
	Yesterday civil.Date
}

// NewScanWindow computes the window for the given wall clock time.
func NewScanWindow(now time.Time) ScanWindow {
	today := civil.DateOf(now.UTC())
	return ScanWindow{Today: today, Yesterday: today.AddDays(-1)}
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}

// Expired reports whether t is older than the window. Scanning stops there.
func (w ScanWindow) Expired(t time.Time) bool {
	return DateOf(t).Before(w.Yesterday)
}

// Contains reports whether t falls on today or yesterday.
func (w ScanWindow) Contains(t time.Time) bool {
	d := DateOf(t)
	return d == w.Today || d == w.Yesterday
}

func (w ScanWindow) String() string {
	return w.Yesterday.String() + ".." + w.Today.String()
}
