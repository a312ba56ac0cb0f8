package boundary

import "github.com/couchcryptid/quake-feed/internal/domain"

// Filter restricts a result set to events whose epicenter lies inside a
// country's boundary-polygon union. Stateless apart from the index; safe for
// concurrent use.
type Filter struct {
	index *Index
}

// NewFilter creates a country filter over the given index.
func NewFilter(ix *Index) *Filter {
	return &Filter{index: ix}
}

// Apply returns a new ResultSet holding only the events inside the country's
// polygons, preserving their relative order. The input is never mutated. An
// empty input yields an empty output, never an error; an unknown code
// surfaces ErrUnknownCountry even though validation should have caught it
// before any fetch.
func (f *Filter) Apply(rs domain.ResultSet, code string) (domain.ResultSet, error) {
	polys, err := f.index.PolygonsFor(code)
	if err != nil {
		return domain.ResultSet{}, err
	}

	out := rs
	out.Events = make([]domain.EarthquakeRecord, 0, len(rs.Events))
	for _, ev := range rs.Events {
		p := Point{Lat: ev.Epicenter.Lat, Lon: ev.Epicenter.Lon}
		for _, poly := range polys {
			if poly.Contains(p) {
				out.Events = append(out.Events, ev)
				break
			}
		}
	}
	out.Count = len(out.Events)
	return out, nil
}
