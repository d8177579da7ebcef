// Package tui provides the live stock dashboard.
package tui

import (
	"time"
)

// DefaultInterval is how often the dashboard refetches when no interval is given.
const DefaultInterval = 10 * time.Second

// NewModel creates a dashboard model. refresh is called on every tick and
// when the user asks for fresh data.
func NewModel(interval time.Duration, refresh func()) *Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if refresh == nil {
		refresh = func() {}
	}
	return &Model{
		Interval: interval,
		refresh:  refresh,
	}
}
