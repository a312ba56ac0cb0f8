package usgs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-feed/internal/domain"
	"github.com/couchcryptid/quake-feed/internal/observability"
)

// DefaultBaseURL is the GeoJSON variant of the USGS FDSN event endpoint.
const DefaultBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1/query?format=geojson"

// Client implements domain.Transport against the USGS earthquake feed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed transport. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Send issues the encoded query and returns the raw response body. The
// context deadline is honored; a request cancelled by its deadline surfaces
// domain.ErrTimeout, any other failure domain.ErrTransport. No retries.
func (c *Client) Send(ctx context.Context, query string) ([]byte, error) {
	fullURL := c.baseURL
	if query != "" {
		fullURL += "&" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrTransport, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if isTimeout(err) {
			c.metrics.RequestsTotal.WithLabelValues("timeout").Inc()
			return nil, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		c.metrics.RequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.metrics.RequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, body)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrTransport, err)
	}

	c.metrics.RequestsTotal.WithLabelValues("success").Inc()
	c.logger.Debug("feed request", "bytes", len(raw), "duration", time.Since(start))
	return raw, nil
}

// isTimeout reports whether err stems from a deadline, either the request
// context's or the HTTP client's own timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
