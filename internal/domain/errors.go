package domain

import "errors"

// Sentinel errors for the query pipeline. Callers match with errors.Is;
// wrapping sites attach detail via fmt.Errorf("%w: ...").
var (
	// ErrInvalidTime reports date/time components that do not form a
	// calendar-valid instant (month 13, day 32, hour 24).
	ErrInvalidTime = errors.New("invalid time components")

	// ErrTimeRange reports a start time after the end time.
	ErrTimeRange = errors.New("start time after end time")

	// ErrMagnitudeRange reports magnitude bounds outside [0, 10] or a
	// minimum above the maximum.
	ErrMagnitudeRange = errors.New("invalid magnitude range")

	// ErrUnknownCountry reports a country code absent from the boundary index.
	ErrUnknownCountry = errors.New("unknown country code")

	// ErrTransport reports a failed request to the remote feed.
	ErrTransport = errors.New("feed request failed")

	// ErrTimeout reports a request cancelled by its deadline.
	ErrTimeout = errors.New("feed request timed out")

	// ErrDecode reports a response that could not be decoded.
	ErrDecode = errors.New("decode feed response")
)
