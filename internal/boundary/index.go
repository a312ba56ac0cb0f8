package boundary

import (
	"fmt"
	"sort"
	"sync"

	"github.com/couchcryptid/quake-feed/internal/domain"
)

// Point is a WGS-84 latitude/longitude coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// Polygon is a closed ring of vertices approximating part of a country's
// territorial outline. Read-only after the index is built.
type Polygon struct {
	Ring []Point

	// Latitude bounds for cheap rejection. Longitude bounds are useless
	// here because rings may cross the anti-meridian.
	minLat, maxLat float64
}

// Contains reports whether p lies inside or on the polygon.
func (poly Polygon) Contains(p Point) bool {
	if p.Lat < poly.minLat || p.Lat > poly.maxLat {
		return false
	}
	return ringContains(poly.Ring, p)
}

// DataSource supplies raw polygon vertex rings per country code at index
// initialization time. Keys are ISO-3166 alpha-2 codes.
type DataSource interface {
	Boundaries() (map[string][][]Point, error)
}

// Index maps country codes to their boundary-polygon unions. Built once,
// immutable and safe for concurrent lookups afterwards.
type Index struct {
	countries map[string][]Polygon
}

// NewIndex loads all boundaries from src and builds the lookup index.
func NewIndex(src DataSource) (*Index, error) {
	raw, err := src.Boundaries()
	if err != nil {
		return nil, fmt.Errorf("load boundaries: %w", err)
	}

	countries := make(map[string][]Polygon, len(raw))
	for code, rings := range raw {
		polys := make([]Polygon, 0, len(rings))
		for i, ring := range rings {
			if len(ring) < 3 {
				return nil, fmt.Errorf("country %s: ring %d has %d vertices, need at least 3", code, i, len(ring))
			}
			polys = append(polys, newPolygon(ring))
		}
		countries[code] = polys
	}
	return &Index{countries: countries}, nil
}

func newPolygon(ring []Point) Polygon {
	poly := Polygon{Ring: ring, minLat: ring[0].Lat, maxLat: ring[0].Lat}
	for _, v := range ring[1:] {
		if v.Lat < poly.minLat {
			poly.minLat = v.Lat
		}
		if v.Lat > poly.maxLat {
			poly.maxLat = v.Lat
		}
	}
	return poly
}

// Known reports whether code resolves to an entry in the index.
// Implements domain.CountryResolver.
func (ix *Index) Known(code string) bool {
	_, ok := ix.countries[code]
	return ok
}

// Codes returns all known country codes, sorted.
func (ix *Index) Codes() []string {
	codes := make([]string, 0, len(ix.countries))
	for code := range ix.countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// PolygonsFor returns the polygons bounding the country's territory.
func (ix *Index) PolygonsFor(code string) ([]Polygon, error) {
	polys, ok := ix.countries[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCountry, code)
	}
	return polys, nil
}

// Contains reports whether p falls inside ANY polygon associated with the
// country — union semantics, since countries may own disjoint territories.
func (ix *Index) Contains(p Point, code string) (bool, error) {
	polys, err := ix.PolygonsFor(code)
	if err != nil {
		return false, err
	}
	for _, poly := range polys {
		if poly.Contains(p) {
			return true, nil
		}
	}
	return false, nil
}

// The default index is built lazily from the embedded dataset on first use
// and shared process-wide; the dataset does not change within a process
// lifetime.
var (
	defaultOnce  sync.Once
	defaultIndex *Index
	defaultErr   error
)

// Default returns the process-wide index over the embedded dataset.
func Default() (*Index, error) {
	defaultOnce.Do(func() {
		defaultIndex, defaultErr = NewIndex(Embedded())
	})
	return defaultIndex, defaultErr
}
