package query

import "time"

// MaxRetryDelay caps the exponential backoff between fetch attempts.
const MaxRetryDelay = 30 * time.Second

// Policy controls freshness, retention and retries of one query.
type Policy struct {
	// StaleAfter is the age after which cached data is refetched on access.
	// Zero means always stale, a negative value means never stale.
	StaleAfter time.Duration
	// GCAfter is how long an entry without observers is retained.
	// A negative value keeps it forever.
	GCAfter time.Duration
	// Retry is the number of additional attempts after a failed fetch.
	Retry int
	// RetryDelay is the base of the exponential backoff.
	RetryDelay time.Duration
}

// DefaultPolicy returns the policy used when a query does not name one.
func DefaultPolicy() Policy {
	return Policy{
		StaleAfter: 0,
		GCAfter:    5 * time.Minute,
		Retry:      3,
		RetryDelay: time.Second,
	}
}

func (p Policy) attempts() uint {
	if p.Retry < 0 {
		return 1
	}
	return uint(p.Retry) + 1
}

func (p Policy) expired(fetchedAt, now time.Time) bool {
	if p.StaleAfter < 0 {
		return false
	}
	return now.Sub(fetchedAt) >= p.StaleAfter
}
