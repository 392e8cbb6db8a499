package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fleetsim/internal/config"
	"fleetsim/internal/types"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*HTTPProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewHTTPProvider(config.RouterConfig{BaseURL: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewHTTPProvider() error: %v", err)
	}
	return p, srv
}

var testWaypoints = []types.Point{{Lat: 18.52, Lng: 73.86}, {Lat: 18.55, Lng: 73.90}}

func TestHTTPProvider_QueryNormalizesResponse(t *testing.T) {
	var gotBody directionsRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("Authorization = %q, want test-key", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":5200,"duration":420},"geometry":[[73.86,18.52],[73.90,18.55]]}]}`))
	})

	candidates, err := p.Query(context.Background(), testWaypoints, QueryOptions{})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	c := candidates[0]
	if c.DistanceMeters != 5200 {
		t.Errorf("DistanceMeters = %f, want 5200", c.DistanceMeters)
	}
	// Provider durations are seconds; candidates carry milliseconds.
	if c.DurationMillis != 420000 || c.RawDurationMillis != 420000 {
		t.Errorf("durations = %f/%f, want 420000", c.DurationMillis, c.RawDurationMillis)
	}
	if c.Degraded {
		t.Error("well-formed geometry flagged as degraded")
	}
	if c.Geometry[0] != (types.Point{Lat: 18.52, Lng: 73.86}) {
		t.Errorf("geometry[0] = %+v, want lat-first normalization", c.Geometry[0])
	}

	// Request coordinates go out lon-first.
	if len(gotBody.Coordinates) != 2 || gotBody.Coordinates[0][0] != 73.86 || gotBody.Coordinates[0][1] != 18.52 {
		t.Errorf("request coordinates = %v, want lon-first pairs", gotBody.Coordinates)
	}
}

func TestHTTPProvider_QuerySendsStrategyOptions(t *testing.T) {
	var gotBody map[string]json.RawMessage
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":1,"duration":1},"geometry":[[73.86,18.52],[73.90,18.55]]}]}`))
	})

	opts := QueryOptions{
		Preference:    "shortest",
		AvoidPolygons: [][]types.Point{{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}, {Lat: 5, Lng: 6}}},
		Alternatives:  3,
	}
	if _, err := p.Query(context.Background(), testWaypoints, opts); err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	if string(gotBody["preference"]) != `"shortest"` {
		t.Errorf("preference = %s, want shortest", gotBody["preference"])
	}
	if _, ok := gotBody["options"]; !ok {
		t.Error("avoid polygons not sent")
	}
	if string(gotBody["alternative_routes"]) != `{"target_count":3}` {
		t.Errorf("alternative_routes = %s", gotBody["alternative_routes"])
	}
}

func TestHTTPProvider_UnparseableGeometryDegrades(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":100,"duration":10},"geometry":12345}]}`))
	})

	candidates, err := p.Query(context.Background(), testWaypoints, QueryOptions{})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	c := candidates[0]
	if !c.Degraded {
		t.Fatal("expected degraded candidate")
	}
	if len(c.Geometry) != len(testWaypoints) || c.Geometry[0] != testWaypoints[0] {
		t.Errorf("degraded geometry = %+v, want the requested waypoints", c.Geometry)
	}
	if c.DistanceMeters != 100 || c.DurationMillis != 10000 {
		t.Errorf("summary not preserved on degraded candidate: %+v", c)
	}
}

func TestHTTPProvider_RetriesTransientFailures(t *testing.T) {
	var attempts int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":1,"duration":1},"geometry":[[73.86,18.52],[73.90,18.55]]}]}`))
	})

	if _, err := p.Query(context.Background(), testWaypoints, QueryOptions{}); err != nil {
		t.Fatalf("Query() error after retry: %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("server saw %d attempts, want 2", got)
	}
}

func TestHTTPProvider_ClientErrorNotRetried(t *testing.T) {
	var attempts int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "bad coordinates", http.StatusBadRequest)
	})

	if _, err := p.Query(context.Background(), testWaypoints, QueryOptions{}); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("server saw %d attempts, want 1 (no retry on 4xx)", got)
	}
}

func TestHTTPProvider_EmptyRoutesIsError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[]}`))
	})

	if _, err := p.Query(context.Background(), testWaypoints, QueryOptions{}); err == nil {
		t.Fatal("expected error for empty route list")
	}
}

func TestHTTPProvider_RejectsSingleWaypoint(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := p.Query(context.Background(), testWaypoints[:1], QueryOptions{}); err == nil {
		t.Fatal("expected error for single waypoint")
	}
}
