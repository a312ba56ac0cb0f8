package usgs

import (
	"net/url"
	"testing"
	"time"

	"github.com/couchcryptid/quake-feed/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseQuery(t *testing.T, encoded string) url.Values {
	t.Helper()
	params, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	return params
}

func TestCodec_Encode_AllFields(t *testing.T) {
	q := domain.Query{}.
		WithStart(time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC)).
		WithEnd(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
		WithMinMagnitude(4.5).
		WithMaxMagnitude(8).
		WithAlertLevel(domain.AlertOrange).
		WithOrder(domain.OrderMagnitude)

	params := mustParseQuery(t, Codec{}.Encode(q))

	assert.Equal(t, "2024-01-15T06:30:00", params.Get("starttime"))
	assert.Equal(t, "2024-02-01T00:00:00", params.Get("endtime"))
	assert.Equal(t, "4.5", params.Get("minmagnitude"))
	assert.Equal(t, "8", params.Get("maxmagnitude"))
	assert.Equal(t, "orange", params.Get("alertlevel"))
	assert.Equal(t, "magnitude", params.Get("orderby"))
}

func TestCodec_Encode_EmptyQuery(t *testing.T) {
	assert.Empty(t, Codec{}.Encode(domain.Query{}))
}

func TestCodec_Encode_OmitsUnsetSlots(t *testing.T) {
	q := domain.Query{}.WithMinMagnitude(5)

	params := mustParseQuery(t, Codec{}.Encode(q))

	assert.Equal(t, "5", params.Get("minmagnitude"))
	for _, key := range []string{"starttime", "endtime", "maxmagnitude", "alertlevel", "orderby"} {
		assert.False(t, params.Has(key), "unset slot %q should not encode", key)
	}
}

func TestCodec_Encode_AlertAllOmitted(t *testing.T) {
	q := domain.Query{}.WithAlertLevel(domain.AlertAll)

	params := mustParseQuery(t, Codec{}.Encode(q))
	assert.False(t, params.Has("alertlevel"))
}

func TestCodec_Encode_CountryStaysClientSide(t *testing.T) {
	q := domain.Query{}.WithCountry("JP").WithMinMagnitude(5)

	encoded := Codec{}.Encode(q)
	assert.NotContains(t, encoded, "JP")
	assert.NotContains(t, encoded, "country")
}

func TestCodec_Decode_FeatureCollection(t *testing.T) {
	raw := []byte(`{
		"type": "FeatureCollection",
		"metadata": {
			"generated": 1704103200000,
			"title": "USGS Earthquakes",
			"count": 1
		},
		"features": [
			{
				"type": "Feature",
				"id": "us7000abcd",
				"properties": {
					"mag": 6.2,
					"place": "42 km SW of Elazig, Turkey",
					"time": 1704100000000,
					"updated": 1704101000000,
					"url": "https://earthquake.usgs.gov/earthquakes/eventpage/us7000abcd",
					"felt": 312,
					"alert": "yellow",
					"status": "reviewed",
					"tsunami": 0,
					"sig": 591,
					"magType": "mww",
					"title": "M 6.2 - 42 km SW of Elazig, Turkey"
				},
				"geometry": {
					"type": "Point",
					"coordinates": [38.85, 39.22, 10.5]
				}
			}
		]
	}`)

	echo := domain.Query{}.WithMinMagnitude(5)
	rs, err := Codec{}.Decode(raw, echo)
	require.NoError(t, err)

	assert.Equal(t, 1, rs.Count)
	assert.Equal(t, "USGS Earthquakes", rs.Title)
	assert.Equal(t, time.UnixMilli(1704103200000).UTC(), rs.Generated)
	assert.False(t, rs.FetchedAt.IsZero())

	min, ok := rs.Query.MinMagnitude()
	require.True(t, ok)
	assert.Equal(t, 5.0, min)

	require.Len(t, rs.Events, 1)
	mag := 6.2
	felt := 312
	alert := domain.AlertYellow
	want := domain.EarthquakeRecord{
		ID:            "us7000abcd",
		Magnitude:     &mag,
		MagnitudeType: "mww",
		Place:         "42 km SW of Elazig, Turkey",
		Epicenter:     domain.Geo{Lat: 39.22, Lon: 38.85},
		DepthKM:       10.5,
		Time:          time.UnixMilli(1704100000000).UTC(),
		Updated:       time.UnixMilli(1704101000000).UTC(),
		Alert:         &alert,
		Tsunami:       false,
		Felt:          &felt,
		Significance:  591,
		Status:        "reviewed",
		URL:           "https://earthquake.usgs.gov/earthquakes/eventpage/us7000abcd",
		Title:         "M 6.2 - 42 km SW of Elazig, Turkey",
	}
	if diff := cmp.Diff(want, rs.Events[0]); diff != "" {
		t.Errorf("decoded record mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_Decode_NullableFieldsAbsent(t *testing.T) {
	raw := []byte(`{
		"type": "FeatureCollection",
		"metadata": {"generated": 0, "count": 1},
		"features": [
			{
				"id": "nc100",
				"properties": {"place": "offshore", "time": 1704100000000, "tsunami": 1},
				"geometry": {"type": "Point", "coordinates": [-122.5, 37.8]}
			}
		]
	}`)

	rs, err := Codec{}.Decode(raw, domain.Query{})
	require.NoError(t, err)
	require.Len(t, rs.Events, 1)

	rec := rs.Events[0]
	assert.Nil(t, rec.Magnitude)
	assert.Nil(t, rec.Felt)
	assert.Nil(t, rec.Alert)
	assert.True(t, rec.Tsunami)
	assert.Equal(t, 0.0, rec.DepthKM)
	assert.True(t, rs.Generated.IsZero())
}

func TestCodec_Decode_InvalidJSON(t *testing.T) {
	_, err := Codec{}.Decode([]byte("<html>Service Unavailable</html>"), domain.Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestCodec_Decode_WrongDocumentType(t *testing.T) {
	_, err := Codec{}.Decode([]byte(`{"type":"Feature"}`), domain.Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestCodec_Decode_TruncatedCoordinates(t *testing.T) {
	raw := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"id": "bad", "properties": {}, "geometry": {"coordinates": [12.3]}}
		]
	}`)

	_, err := Codec{}.Decode(raw, domain.Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecode)
	assert.Contains(t, err.Error(), "feature 0")
}

func TestCodec_Decode_EmptyCollection(t *testing.T) {
	rs, err := Codec{}.Decode([]byte(`{"type":"FeatureCollection","features":[]}`), domain.Query{})
	require.NoError(t, err)
	assert.Empty(t, rs.Events)
	assert.Equal(t, 0, rs.Count)
}
