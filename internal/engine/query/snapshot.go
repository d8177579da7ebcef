package query

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a cache entry.
type Status uint8

// Entry states.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// state is the untyped view of an entry handed to observers.
type state struct {
	data      any
	hasData   bool
	err       error
	status    Status
	fetchedAt time.Time
	stale     bool
}

// Snapshot is what an observer sees of its entry at one point in time.
// Data keeps the last good value while a refetch is loading or after it failed.
type Snapshot[T any] struct {
	Data      T
	HasData   bool
	Err       error
	Status    Status
	FetchedAt time.Time
	IsStale   bool
}

// IsLoading reports whether a fetch for the entry is in flight.
func (s Snapshot[T]) IsLoading() bool {
	return s.Status == StatusLoading
}

func typed[T any](st state) Snapshot[T] {
	snap := Snapshot[T]{
		Err:       st.err,
		Status:    st.status,
		FetchedAt: st.fetchedAt,
		IsStale:   st.stale,
	}
	if v, ok := st.data.(T); ok && st.hasData {
		snap.Data = v
		snap.HasData = true
	}
	return snap
}
