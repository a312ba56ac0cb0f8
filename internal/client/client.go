// Package client ties the query descriptor, wire codec, transport, and
// country filter together behind a fluent API: configure a Builder in any
// order, then Fetch. Nothing touches the network until Fetch, and Fetch
// never dispatches a request for a descriptor that fails validation.
package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-feed/internal/boundary"
	"github.com/couchcryptid/quake-feed/internal/domain"
	"github.com/couchcryptid/quake-feed/internal/observability"
)

// Client issues validated queries against the earthquake feed.
// Safe for concurrent use; builders are independent values.
type Client struct {
	transport domain.Transport
	codec     domain.Codec
	countries *boundary.Index
	filter    *boundary.Filter
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New creates a Client. The boundary index backs both country-code
// validation and post-fetch filtering.
func New(transport domain.Transport, codec domain.Codec, countries *boundary.Index, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		transport: transport,
		codec:     codec,
		countries: countries,
		filter:    boundary.NewFilter(countries),
		metrics:   metrics,
		logger:    logger,
	}
}

// Query starts a new builder with no criteria set.
func (c *Client) Query() Builder {
	return Builder{client: c}
}

// Builder accumulates filter criteria. Each call returns a new value, so a
// partially configured builder can be forked and reused. Setting a slot
// twice overwrites the earlier value. Component-form time setters that fail
// to normalize poison the builder; the error surfaces at Fetch, keeping the
// fluent chain unbroken.
type Builder struct {
	client *Client
	query  domain.Query
	err    error
}

// fail records the first error; later errors are ignored.
func (b Builder) fail(err error) Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// StartTime sets the range start from local date/time components, using the
// system zone at call time.
func (b Builder) StartTime(year, month, day, hour, min int) Builder {
	return b.StartTimeIn(nil, year, month, day, hour, min)
}

// StartTimeIn sets the range start from date/time components in loc.
// A nil loc means the local system zone.
func (b Builder) StartTimeIn(loc *time.Location, year, month, day, hour, min int) Builder {
	t, err := domain.NormalizeTime(year, month, day, hour, min, loc)
	if err != nil {
		return b.fail(err)
	}
	return b.StartAt(t)
}

// StartAt sets the range start from an instant.
func (b Builder) StartAt(t time.Time) Builder {
	b.query = b.query.WithStart(t)
	return b
}

// EndTime sets the range end from local date/time components, using the
// system zone at call time.
func (b Builder) EndTime(year, month, day, hour, min int) Builder {
	return b.EndTimeIn(nil, year, month, day, hour, min)
}

// EndTimeIn sets the range end from date/time components in loc.
func (b Builder) EndTimeIn(loc *time.Location, year, month, day, hour, min int) Builder {
	t, err := domain.NormalizeTime(year, month, day, hour, min, loc)
	if err != nil {
		return b.fail(err)
	}
	return b.EndAt(t)
}

// EndAt sets the range end from an instant.
func (b Builder) EndAt(t time.Time) Builder {
	b.query = b.query.WithEnd(t)
	return b
}

// MinMagnitude sets the minimum magnitude filter.
func (b Builder) MinMagnitude(m float64) Builder {
	b.query = b.query.WithMinMagnitude(m)
	return b
}

// MaxMagnitude sets the maximum magnitude filter.
func (b Builder) MaxMagnitude(m float64) Builder {
	b.query = b.query.WithMaxMagnitude(m)
	return b
}

// AlertLevel filters on a PAGER alert level; AlertAll matches everything.
func (b Builder) AlertLevel(a domain.AlertLevel) Builder {
	b.query = b.query.WithAlertLevel(a)
	return b
}

// OrderBy sets the result ordering.
func (b Builder) OrderBy(o domain.OrderBy) Builder {
	b.query = b.query.WithOrder(o)
	return b
}

// Country restricts results to epicenters inside the country's boundary
// polygons (ISO-3166 alpha-2 code). Applied client-side after the fetch.
func (b Builder) Country(code string) Builder {
	b.query = b.query.WithCountry(code)
	return b
}

// Descriptor returns the accumulated immutable descriptor.
func (b Builder) Descriptor() domain.Query {
	return b.query
}

// Fetch validates the descriptor, executes the query, and decodes the
// response. Validation failures surface before any network activity. When a
// country is set, the result set is narrowed to its boundary polygons.
func (b Builder) Fetch(ctx context.Context) (domain.ResultSet, error) {
	if b.err != nil {
		return domain.ResultSet{}, b.err
	}

	c := b.client
	if err := b.query.Validate(c.countries); err != nil {
		return domain.ResultSet{}, err
	}

	encoded := c.codec.Encode(b.query)
	raw, err := c.transport.Send(ctx, encoded)
	if err != nil {
		return domain.ResultSet{}, err
	}

	rs, err := c.codec.Decode(raw, b.query)
	if err != nil {
		return domain.ResultSet{}, err
	}
	c.metrics.EventsFetched.Add(float64(len(rs.Events)))

	if code := b.query.Country(); code != "" {
		fetched := len(rs.Events)
		rs, err = c.filter.Apply(rs, code)
		if err != nil {
			return domain.ResultSet{}, err
		}
		c.metrics.FilterEvents.WithLabelValues("kept").Add(float64(len(rs.Events)))
		c.metrics.FilterEvents.WithLabelValues("dropped").Add(float64(fetched - len(rs.Events)))
		c.logger.Debug("country filter applied",
			"country", code,
			"fetched", fetched,
			"kept", len(rs.Events),
		)
	}

	return rs, nil
}
