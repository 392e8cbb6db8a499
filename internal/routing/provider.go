// README: HTTP adapter for the external routing provider.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"fleetsim/internal/config"
	"fleetsim/internal/types"
)

// Provider issues one routing query and returns the provider's paths as
// unscored, untagged candidates. Implementations keep no state between calls.
type Provider interface {
	Query(ctx context.Context, waypoints []types.Point, opts QueryOptions) ([]Candidate, error)
}

// HTTPProvider speaks the provider's directions API. It is safe for
// concurrent use; transient failures (429, 5xx, network errors) are retried
// with exponential backoff.
type HTTPProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
	profile string
}

func NewHTTPProvider(cfg config.RouterConfig) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("router base URL is empty")
	}
	profile := cfg.Profile
	if profile == "" {
		profile = "driving-car"
	}
	return &HTTPProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		profile: profile,
	}, nil
}

type directionsRequest struct {
	Coordinates       [][]float64        `json:"coordinates"`
	Preference        string             `json:"preference,omitempty"`
	Options           *requestOptions    `json:"options,omitempty"`
	AlternativeRoutes *alternativeRoutes `json:"alternative_routes,omitempty"`
}

type requestOptions struct {
	AvoidPolygons *geojson.Geometry `json:"avoid_polygons,omitempty"`
}

type alternativeRoutes struct {
	TargetCount int `json:"target_count"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"routes"`
}

func (p *HTTPProvider) Query(ctx context.Context, waypoints []types.Point, opts QueryOptions) ([]Candidate, error) {
	if len(waypoints) < 2 {
		return nil, errors.New("router query: need at least two waypoints")
	}

	body := directionsRequest{
		Coordinates: make([][]float64, len(waypoints)),
		Preference:  opts.Preference,
	}
	for i, w := range waypoints {
		body.Coordinates[i] = []float64{w.Lng, w.Lat}
	}
	if len(opts.AvoidPolygons) > 0 {
		body.Options = &requestOptions{AvoidPolygons: encodeAvoidPolygons(opts.AvoidPolygons)}
	}
	if opts.Alternatives > 0 {
		body.AlternativeRoutes = &alternativeRoutes{TargetCount: opts.Alternatives}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("router query: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s", p.baseURL, p.profile)
	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, url, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("router query: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("router query: decode response: %w", err)
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("router query: no routes in response")
	}

	candidates := make([]Candidate, 0, len(decoded.Routes))
	for _, r := range decoded.Routes {
		c := Candidate{
			DistanceMeters:    r.Summary.Distance,
			DurationMillis:    r.Summary.Duration * 1000,
			RawDurationMillis: r.Summary.Duration * 1000,
		}
		points, err := normalizeGeometry(r.Geometry)
		if err != nil || len(points) < 2 {
			// Unparseable geometry degrades to the requested waypoints so the
			// caller always has a renderable path.
			c.Geometry = append([]types.Point(nil), waypoints...)
			c.Degraded = true
		} else {
			c.Geometry = points
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (p *HTTPProvider) newRequest(ctx context.Context, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", p.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

func (p *HTTPProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

func (p *HTTPProvider) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}
		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil, lastErr
}
