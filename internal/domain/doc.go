// Package domain models queries against the USGS FDSN earthquake event feed.
//
// # Data Source
//
// Events come from the USGS earthquake catalog, served by the FDSN event
// web service at https://earthquake.usgs.gov/fdsnws/event/1/query. The feed
// returns GeoJSON FeatureCollections; each feature is one seismic event.
//
// # Feed Conventions
//
// Coordinates:
//
//	GeoJSON geometry carries [longitude, latitude, depth-km] in that order.
//	EarthquakeRecord stores them as an explicit lat/lon pair plus depth so
//	callers never have to remember the GeoJSON ordering.
//
// Times:
//
//	Event and update times are milliseconds since the Unix epoch, UTC.
//	Query parameters (starttime, endtime) are ISO-8601, interpreted as UTC
//	when no zone is given. All times in this package are UTC instants.
//
// Magnitude:
//
//	May be absent for very recent or unreviewed events, so records carry it
//	as a pointer. The feed accepts minmagnitude/maxmagnitude filters as
//	decimals; 10 is used as the domain-reasonable ceiling (the largest
//	earthquake ever recorded, Valdivia 1960, was magnitude 9.5).
//
// Alert level:
//
//	PAGER alert levels green, yellow, orange and red classify estimated
//	impact. Most events carry none. The pseudo-level "all" disables the
//	filter and is never sent on the wire.
//
// # Query Model
//
// Query is an immutable descriptor built through With* transformations, each
// returning a new value. Nothing validates until a terminal fetch, at which
// point Validate runs the same ordered checks every time: time range, then
// magnitude range, then country code. Country filtering is client-side: the
// feed knows nothing about political boundaries, so the code is validated
// against the boundary index and applied after decoding.
package domain
