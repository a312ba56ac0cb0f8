package boundary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// The embedded dataset holds coarse, low-resolution outlines of quake-prone
// countries — adequate for epicenter-level filtering, not for cartography.
// Higher-resolution datasets in the same shape can be substituted via
// FileSource (or any other DataSource) without touching the index.
//
// Shape: {"TR": [[[lat, lon], ...], ...], ...} — code → rings → vertices.
//
//go:embed data/boundaries.json
var embeddedBoundaries []byte

// Embedded returns a DataSource over the packaged boundary dataset.
func Embedded() DataSource {
	return jsonSource{raw: embeddedBoundaries, name: "embedded dataset"}
}

// FileSource returns a DataSource reading a boundary JSON file at load time.
func FileSource(path string) DataSource {
	return fileSource(path)
}

type jsonSource struct {
	raw  []byte
	name string
}

func (s jsonSource) Boundaries() (map[string][][]Point, error) {
	var doc map[string][][][2]float64
	if err := json.Unmarshal(s.raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.name, err)
	}

	out := make(map[string][][]Point, len(doc))
	for code, rings := range doc {
		converted := make([][]Point, len(rings))
		for i, ring := range rings {
			pts := make([]Point, len(ring))
			for j, v := range ring {
				pts[j] = Point{Lat: v[0], Lon: v[1]}
			}
			converted[i] = pts
		}
		out[code] = converted
	}
	return out, nil
}

type fileSource string

func (f fileSource) Boundaries() (map[string][][]Point, error) {
	raw, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("read boundary file: %w", err)
	}
	return jsonSource{raw: raw, name: string(f)}.Boundaries()
}
