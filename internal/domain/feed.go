package domain

import "context"

// Transport issues an encoded query against the remote feed and returns the
// raw response bytes. Implementations honor the context deadline; a request
// cancelled by its deadline surfaces ErrTimeout, any other failure
// ErrTransport. Retry policy, if any, lives behind this interface — the core
// never retries.
type Transport interface {
	Send(ctx context.Context, query string) ([]byte, error)
}

// Codec converts between query descriptors and the feed's wire format.
type Codec interface {
	// Encode serializes a descriptor into a URL query string with keys such
	// as starttime, endtime, minmagnitude, maxmagnitude, alertlevel, orderby.
	Encode(q Query) string

	// Decode deserializes raw response bytes into a ResultSet, echoing the
	// descriptor that produced it. Malformed payloads fail with ErrDecode.
	Decode(raw []byte, echo Query) (ResultSet, error)
}
