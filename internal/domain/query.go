package domain

import (
	"fmt"
	"time"
)

// maxMagnitudeCeiling is the domain-reasonable upper bound for magnitude
// filters; see the package doc.
const maxMagnitudeCeiling = 10.0

// CountryResolver answers whether a country code is known to the boundary
// dataset. Implemented by boundary.Index.
type CountryResolver interface {
	Known(code string) bool
}

// Query is the immutable descriptor of filter criteria sent to the feed.
// Every slot is optional; each With* call returns a new value with that one
// slot replaced (last write wins), so a Query can be shared freely between
// goroutines and reused across fetches.
type Query struct {
	start   *time.Time
	end     *time.Time
	minMag  *float64
	maxMag  *float64
	alert   *AlertLevel
	order   *OrderBy
	country string
}

// WithStart returns a copy of q with the start of the time range set.
// The instant is stored in UTC.
func (q Query) WithStart(t time.Time) Query {
	u := t.UTC()
	q.start = &u
	return q
}

// WithEnd returns a copy of q with the end of the time range set.
func (q Query) WithEnd(t time.Time) Query {
	u := t.UTC()
	q.end = &u
	return q
}

// WithMinMagnitude returns a copy of q with the minimum magnitude set.
func (q Query) WithMinMagnitude(m float64) Query {
	q.minMag = &m
	return q
}

// WithMaxMagnitude returns a copy of q with the maximum magnitude set.
func (q Query) WithMaxMagnitude(m float64) Query {
	q.maxMag = &m
	return q
}

// WithAlertLevel returns a copy of q filtering on a PAGER alert level.
// AlertAll matches everything and is omitted from the wire encoding.
func (q Query) WithAlertLevel(a AlertLevel) Query {
	q.alert = &a
	return q
}

// WithOrder returns a copy of q with the result ordering set.
func (q Query) WithOrder(o OrderBy) Query {
	q.order = &o
	return q
}

// WithCountry returns a copy of q restricted to events whose epicenter lies
// inside the named country's boundary polygons. The code is ISO-3166
// alpha-2, e.g. "TR". Filtering happens client-side after the fetch.
func (q Query) WithCountry(code string) Query {
	q.country = code
	return q
}

// Start returns the start bound and whether it is set.
func (q Query) Start() (time.Time, bool) {
	if q.start == nil {
		return time.Time{}, false
	}
	return *q.start, true
}

// End returns the end bound and whether it is set.
func (q Query) End() (time.Time, bool) {
	if q.end == nil {
		return time.Time{}, false
	}
	return *q.end, true
}

// MinMagnitude returns the minimum magnitude bound and whether it is set.
func (q Query) MinMagnitude() (float64, bool) {
	if q.minMag == nil {
		return 0, false
	}
	return *q.minMag, true
}

// MaxMagnitude returns the maximum magnitude bound and whether it is set.
func (q Query) MaxMagnitude() (float64, bool) {
	if q.maxMag == nil {
		return 0, false
	}
	return *q.maxMag, true
}

// Alert returns the alert-level filter and whether it is set.
func (q Query) Alert() (AlertLevel, bool) {
	if q.alert == nil {
		return "", false
	}
	return *q.alert, true
}

// Order returns the result ordering and whether it is set.
func (q Query) Order() (OrderBy, bool) {
	if q.order == nil {
		return "", false
	}
	return *q.order, true
}

// Country returns the country code, empty when unset.
func (q Query) Country() string { return q.country }

// Validate checks the descriptor before it is allowed on the wire. Checks
// run in a fixed order and short-circuit on the first failure: time range,
// magnitude range, country code. It never mutates q and is idempotent, so
// terminal operations re-run it on every call.
func (q Query) Validate(countries CountryResolver) error {
	if q.start != nil && q.end != nil && q.start.After(*q.end) {
		return fmt.Errorf("%w: start %s, end %s",
			ErrTimeRange, q.start.Format(time.RFC3339), q.end.Format(time.RFC3339))
	}

	if q.minMag != nil && *q.minMag < 0 {
		return fmt.Errorf("%w: minimum %g below 0", ErrMagnitudeRange, *q.minMag)
	}
	if q.maxMag != nil && *q.maxMag > maxMagnitudeCeiling {
		return fmt.Errorf("%w: maximum %g above %g", ErrMagnitudeRange, *q.maxMag, maxMagnitudeCeiling)
	}
	if q.minMag != nil && q.maxMag != nil && *q.minMag > *q.maxMag {
		return fmt.Errorf("%w: minimum %g above maximum %g", ErrMagnitudeRange, *q.minMag, *q.maxMag)
	}

	if q.alert != nil && !q.alert.Valid() {
		return fmt.Errorf("invalid alert level %q", *q.alert)
	}
	if q.order != nil && !q.order.Valid() {
		return fmt.Errorf("invalid ordering %q", *q.order)
	}

	if q.country != "" {
		if countries == nil || !countries.Known(q.country) {
			return fmt.Errorf("%w: %q", ErrUnknownCountry, q.country)
		}
	}

	return nil
}
