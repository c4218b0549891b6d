package prayer

import "errors"

var (
	// ErrScheduleUnavailable means the external timings source errored,
	// timed out, or returned malformed data. Callers fall back to the
	// static default schedule and must surface degraded mode.
	ErrScheduleUnavailable = errors.New("prayer schedule unavailable")

	// ErrInvalidCoordinates means latitude/longitude were outside the
	// valid range. Not recoverable; no schedule is derived.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrPersistenceWrite means the durable store rejected or timed out
	// a completion write. Optimistic caches must be rolled back.
	ErrPersistenceWrite = errors.New("completion write failed")

	// ErrPersistenceRead means the durable store could not be read.
	// Distinct from an empty record: an empty record is not an error.
	ErrPersistenceRead = errors.New("completion read failed")
)
