package domain

import "time"

// AlertLevel is the PAGER impact classification attached to some events.
type AlertLevel string

const (
	AlertGreen  AlertLevel = "green"
	AlertYellow AlertLevel = "yellow"
	AlertOrange AlertLevel = "orange"
	AlertRed    AlertLevel = "red"

	// AlertAll disables alert-level filtering. It is a query-side value
	// only and never appears on a record or on the wire.
	AlertAll AlertLevel = "all"
)

// Valid reports whether a is one of the known alert levels.
func (a AlertLevel) Valid() bool {
	switch a {
	case AlertGreen, AlertYellow, AlertOrange, AlertRed, AlertAll:
		return true
	}
	return false
}

// OrderBy selects the result ordering applied by the feed.
type OrderBy string

const (
	OrderTime         OrderBy = "time"      // newest first (feed default)
	OrderTimeAsc      OrderBy = "time-asc"  // oldest first
	OrderMagnitude    OrderBy = "magnitude" // largest first
	OrderMagnitudeAsc OrderBy = "magnitude-asc"
)

// Valid reports whether o is one of the known orderings.
func (o OrderBy) Valid() bool {
	switch o {
	case OrderTime, OrderTimeAsc, OrderMagnitude, OrderMagnitudeAsc:
		return true
	}
	return false
}

// Geo is a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EarthquakeRecord is one reported seismic event. Values are immutable
// snapshots owned by the caller once returned.
type EarthquakeRecord struct {
	ID            string      `json:"id"`
	Magnitude     *float64    `json:"magnitude,omitempty"` // nil when unreported
	MagnitudeType string      `json:"magnitude_type,omitempty"`
	Place         string      `json:"place,omitempty"`
	Epicenter     Geo         `json:"epicenter"`
	DepthKM       float64     `json:"depth_km"`
	Time          time.Time   `json:"time"`
	Updated       time.Time   `json:"updated,omitempty"`
	Alert         *AlertLevel `json:"alert,omitempty"` // nil when unclassified
	Tsunami       bool        `json:"tsunami"`
	Felt          *int        `json:"felt,omitempty"`
	Significance  int         `json:"significance,omitempty"`
	Status        string      `json:"status,omitempty"` // "reviewed", "automatic"
	URL           string      `json:"url,omitempty"`
	Title         string      `json:"title,omitempty"`
}

// ResultSet is an ordered sequence of records plus the query that produced
// it. Created fresh per fetch and never mutated afterwards; filtering
// produces a new ResultSet rather than editing this one.
type ResultSet struct {
	Events    []EarthquakeRecord `json:"events"`
	Count     int                `json:"count"`
	Generated time.Time          `json:"generated,omitempty"` // feed-side generation time
	Title     string             `json:"title,omitempty"`
	FetchedAt time.Time          `json:"fetched_at"`

	// Query echoes the descriptor the set was fetched with.
	Query Query `json:"-"`
}
