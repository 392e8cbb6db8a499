// README: Provider geometry normalization — one decoder per wire variant.
package routing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"googlemaps.github.io/maps"

	"fleetsim/internal/types"
)

// The provider may hand back path geometry in three shapes: an encoded
// polyline string, a bare [[lon,lat],...] coordinate list, or a GeoJSON
// LineString object. Each shape gets its own decoder; detection looks at
// the leading JSON token only, never at decoded values.
type geometryVariant int

const (
	variantUnknown geometryVariant = iota
	variantPolyline
	variantCoordinateList
	variantGeoJSON
)

var errUnknownGeometry = errors.New("unrecognized geometry shape")

func detectVariant(raw json.RawMessage) geometryVariant {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return variantPolyline
		case '[':
			return variantCoordinateList
		case '{':
			return variantGeoJSON
		default:
			return variantUnknown
		}
	}
	return variantUnknown
}

// normalizeGeometry converts any supported provider geometry into the
// system's (lat, lng) point ordering.
func normalizeGeometry(raw json.RawMessage) ([]types.Point, error) {
	switch detectVariant(raw) {
	case variantPolyline:
		return decodePolylineGeometry(raw)
	case variantCoordinateList:
		return decodeCoordinateList(raw)
	case variantGeoJSON:
		return decodeGeoJSONGeometry(raw)
	default:
		return nil, errUnknownGeometry
	}
}

func decodePolylineGeometry(raw json.RawMessage) ([]types.Point, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("decode polyline geometry: %w", err)
	}
	latLngs, err := maps.DecodePolyline(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode polyline geometry: %w", err)
	}
	points := make([]types.Point, len(latLngs))
	for i, ll := range latLngs {
		points[i] = types.Point{Lat: ll.Lat, Lng: ll.Lng}
	}
	return points, nil
}

func decodeCoordinateList(raw json.RawMessage) ([]types.Point, error) {
	var coords [][]float64
	if err := json.Unmarshal(raw, &coords); err != nil {
		return nil, fmt.Errorf("decode coordinate list: %w", err)
	}
	points := make([]types.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("decode coordinate list: pair has %d values", len(c))
		}
		// Providers emit lon-first pairs.
		points = append(points, types.Point{Lat: c[1], Lng: c[0]})
	}
	return points, nil
}

func decodeGeoJSONGeometry(raw json.RawMessage) ([]types.Point, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("decode geojson geometry: %w", err)
	}
	line, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("decode geojson geometry: want LineString, got %s", g.Type)
	}
	points := make([]types.Point, len(line))
	for i, p := range line {
		points[i] = types.Point{Lat: p.Lat(), Lng: p.Lon()}
	}
	return points, nil
}

// encodeAvoidPolygons renders exclusion areas as a GeoJSON MultiPolygon,
// lon-first as the provider expects.
func encodeAvoidPolygons(polygons [][]types.Point) *geojson.Geometry {
	mp := make(orb.MultiPolygon, 0, len(polygons))
	for _, ring := range polygons {
		outer := make(orb.Ring, 0, len(ring)+1)
		for _, p := range ring {
			outer = append(outer, orb.Point{p.Lng, p.Lat})
		}
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			outer = append(outer, orb.Point{ring[0].Lng, ring[0].Lat})
		}
		mp = append(mp, orb.Polygon{outer})
	}
	return geojson.NewGeometry(mp)
}
