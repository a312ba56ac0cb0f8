package usgs

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-feed/internal/domain"
)

// queryTimeLayout is the ISO-8601 form the feed expects; bare timestamps are
// interpreted as UTC.
const queryTimeLayout = "2006-01-02T15:04:05"

// Codec implements domain.Codec for the feed's URL query parameters and
// GeoJSON responses. Stateless.
type Codec struct{}

// Encode serializes the descriptor into a URL query string. Unset slots are
// omitted entirely, and the alert pseudo-level "all" never reaches the wire.
// The country code is client-side only and does not encode.
func (Codec) Encode(q domain.Query) string {
	params := url.Values{}
	if t, ok := q.Start(); ok {
		params.Set("starttime", t.Format(queryTimeLayout))
	}
	if t, ok := q.End(); ok {
		params.Set("endtime", t.Format(queryTimeLayout))
	}
	if m, ok := q.MinMagnitude(); ok {
		params.Set("minmagnitude", strconv.FormatFloat(m, 'f', -1, 64))
	}
	if m, ok := q.MaxMagnitude(); ok {
		params.Set("maxmagnitude", strconv.FormatFloat(m, 'f', -1, 64))
	}
	if a, ok := q.Alert(); ok && a != domain.AlertAll {
		params.Set("alertlevel", string(a))
	}
	if o, ok := q.Order(); ok {
		params.Set("orderby", string(o))
	}
	return params.Encode()
}

// Decode deserializes a GeoJSON FeatureCollection into a ResultSet echoing
// the descriptor that produced it.
func (Codec) Decode(raw []byte, echo domain.Query) (domain.ResultSet, error) {
	var resp geoJSONResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.ResultSet{}, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if resp.Type != "FeatureCollection" {
		return domain.ResultSet{}, fmt.Errorf("%w: unexpected document type %q", domain.ErrDecode, resp.Type)
	}

	events := make([]domain.EarthquakeRecord, 0, len(resp.Features))
	for i, f := range resp.Features {
		rec, err := mapFeature(f)
		if err != nil {
			return domain.ResultSet{}, fmt.Errorf("%w: feature %d: %v", domain.ErrDecode, i, err)
		}
		events = append(events, rec)
	}

	return domain.ResultSet{
		Events:    events,
		Count:     len(events),
		Generated: msToTime(resp.Metadata.Generated),
		Title:     resp.Metadata.Title,
		FetchedAt: domain.Now(),
		Query:     echo,
	}, nil
}

func mapFeature(f feature) (domain.EarthquakeRecord, error) {
	if len(f.Geometry.Coordinates) < 2 {
		return domain.EarthquakeRecord{}, fmt.Errorf("geometry has %d coordinates", len(f.Geometry.Coordinates))
	}

	rec := domain.EarthquakeRecord{
		ID:            f.ID,
		Magnitude:     f.Properties.Mag,
		MagnitudeType: f.Properties.MagType,
		Place:         f.Properties.Place,
		Epicenter: domain.Geo{
			// GeoJSON order is [lon, lat, depth].
			Lat: f.Geometry.Coordinates[1],
			Lon: f.Geometry.Coordinates[0],
		},
		Time:         msToTime(f.Properties.Time),
		Updated:      msToTime(f.Properties.Updated),
		Tsunami:      f.Properties.Tsunami != 0,
		Felt:         f.Properties.Felt,
		Significance: f.Properties.Sig,
		Status:       f.Properties.Status,
		URL:          f.Properties.URL,
		Title:        f.Properties.Title,
	}
	if len(f.Geometry.Coordinates) >= 3 {
		rec.DepthKM = f.Geometry.Coordinates[2]
	}
	if f.Properties.Alert != "" {
		level := domain.AlertLevel(f.Properties.Alert)
		if level.Valid() && level != domain.AlertAll {
			rec.Alert = &level
		}
	}
	return rec, nil
}

// msToTime converts feed epoch-milliseconds to a UTC instant; 0 maps to the
// zero time.
func msToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// Feed response types (GeoJSON FeatureCollection).

type geoJSONResponse struct {
	Type     string    `json:"type"`
	Metadata metadata  `json:"metadata"`
	Features []feature `json:"features"`
	BBox     []float64 `json:"bbox"`
}

type metadata struct {
	Generated int64  `json:"generated"` // epoch milliseconds
	URL       string `json:"url"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	API       string `json:"api"`
	Count     int    `json:"count"`
}

type feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Mag     *float64 `json:"mag"`
	Place   string   `json:"place"`
	Time    int64    `json:"time"`    // epoch milliseconds
	Updated int64    `json:"updated"` // epoch milliseconds
	URL     string   `json:"url"`
	Felt    *int     `json:"felt"`
	Alert   string   `json:"alert"`
	Status  string   `json:"status"`
	Tsunami int      `json:"tsunami"`
	Sig     int      `json:"sig"`
	MagType string   `json:"magType"`
	Title   string   `json:"title"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth-km]
}
