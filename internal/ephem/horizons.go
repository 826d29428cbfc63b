package ephem

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-hora/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// PositionCacheTTL is how long a fetched position stays valid.
	PositionCacheTTL = 10 * time.Minute

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// HorizonsProvider queries JPL Horizons for observer ecliptic longitudes.
// Sun events come from the analytic search; Horizons has no cheap
// rise/set query.
type HorizonsProvider struct {
	client  *http.Client
	baseURL string
	events  Provider

	mu    sync.RWMutex
	cache map[positionKey]cachedPosition
	now   func() time.Time
}

// positionKey identifies a cached position. Times are truncated to the
// minute and observers rounded to 0.01°.
type positionKey struct {
	body   Body
	minute int64
	lat    int
	lon    int
}

type cachedPosition struct {
	pos       EclipticPosition
	fetchedAt time.Time
}

// HorizonsOption configures a HorizonsProvider.
type HorizonsOption func(*HorizonsProvider)

// WithBaseURL overrides the Horizons endpoint.
func WithBaseURL(u string) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.baseURL = u
	}
}

// WithClient sets the HTTP client used for queries.
func WithClient(c *http.Client) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.client = c
	}
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider(opts ...HorizonsOption) *HorizonsProvider {
	p := &HorizonsProvider{
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		baseURL: HorizonsAPIURL,
		events:  Default(),
		cache:   make(map[positionKey]cachedPosition),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// Position implements Provider.
func (p *HorizonsProvider) Position(body Body, t time.Time, obs astro.Observer) (EclipticPosition, error) {
	if body != BodySun && body != BodyMoon {
		return EclipticPosition{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(body))
	}

	key := positionKey{
		body:   body,
		minute: t.Truncate(time.Minute).Unix(),
		lat:    int(math.Round(obs.LatDeg * 100)),
		lon:    int(math.Round(obs.LonDeg * 100)),
	}

	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()
	if ok && p.now().Sub(cached.fetchedAt) < PositionCacheTTL {
		return cached.pos, nil
	}

	pos, err := p.queryHorizons(body, t.Truncate(time.Minute), obs)
	if err != nil {
		return EclipticPosition{}, err
	}

	now := p.now()
	p.mu.Lock()
	p.sweepLocked(now)
	p.cache[key] = cachedPosition{pos: pos, fetchedAt: now}
	p.mu.Unlock()

	return pos, nil
}

// sweepLocked drops expired positions. Live refreshes query a new minute
// each time, so without this the cache grows for the life of the process.
func (p *HorizonsProvider) sweepLocked(now time.Time) {
	for k, c := range p.cache {
		if now.Sub(c.fetchedAt) >= PositionCacheTTL {
			delete(p.cache, k)
		}
	}
}

// cacheLen returns the number of cached positions.
func (p *HorizonsProvider) cacheLen() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.cache)
}

// SunEvents implements Provider.
func (p *HorizonsProvider) SunEvents(start, end time.Time, obs astro.Observer) ([]Event, error) {
	return p.events.SunEvents(start, end, obs)
}

// InvalidateCache drops every cached position.
func (p *HorizonsProvider) InvalidateCache() {
	p.mu.Lock()
	p.cache = make(map[positionKey]cachedPosition)
	p.mu.Unlock()
}

// queryHorizons requests a single observer-table row for body at t.
func (p *HorizonsProvider) queryHorizons(body Body, t time.Time, obs astro.Observer) (EclipticPosition, error) {
	// Values must be quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", int(body)))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'coord@399'")
	params.Set("COORD_TYPE", "GEODETIC")
	params.Set("SITE_COORD", fmt.Sprintf("'%.4f,%.4f,0.0'", obs.LonDeg, obs.LatDeg))
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t.Add(time.Minute))))
	params.Set("STEP_SIZE", "'1 m'")
	params.Set("QUANTITIES", "'31'") // 31=Observer ecliptic lon/lat

	reqURL := p.baseURL + "?" + params.Encode()

	resp, err := p.client.Get(reqURL)
	if err != nil {
		return EclipticPosition{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return EclipticPosition{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return EclipticPosition{}, fmt.Errorf("failed to read response: %w", err)
	}

	points, err := parseHorizonsResponse(raw)
	if err != nil {
		return EclipticPosition{}, err
	}
	if len(points) == 0 {
		return EclipticPosition{}, fmt.Errorf("no data returned for %s", body)
	}
	return points[0], nil
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// parseHorizonsResponse parses the Horizons JSON response.
func parseHorizonsResponse(body []byte) ([]EclipticPosition, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("horizons error: %s", resp.Error)
	}

	// The ephemeris rows are in resp.Result as a text blob
	return parseEphemerisTable(resp.Result)
}

// parseEphemerisTable extracts rows between the $$SOE and $$EOE markers.
func parseEphemerisTable(result string) ([]EclipticPosition, error) {
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find ephemeris data markers")
	}

	var points []EclipticPosition
	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		point, err := parseEphemerisLine(line)
		if err != nil {
			continue // Skip unparseable lines
		}
		points = append(points, point)
	}

	return points, nil
}

// parseEphemerisLine parses a single ephemeris data line.
// Format for QUANTITIES='31' (ObsEcLon/ObsEcLat):
// 2025-Jan-06 04:00 *m  285.9342136  -0.0001377
// Fields: date, time, optional flags, longitude, latitude
func parseEphemerisLine(line string) (EclipticPosition, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return EclipticPosition{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	t, err := parseHorizonsDateTime(fields[0] + " " + fields[1])
	if err != nil {
		return EclipticPosition{}, err
	}

	// Flag columns (*, *m, Cm, Nm, Am, ...) never parse as numbers
	var values []float64
	for _, f := range fields[2:] {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			values = append(values, v)
			if len(values) == 2 {
				break
			}
		}
	}
	if len(values) < 2 {
		return EclipticPosition{}, fmt.Errorf("could not find ecliptic lon/lat values")
	}

	return EclipticPosition{
		Time:   t,
		LonDeg: astro.NormalizeDegrees(values[0]),
		LatDeg: values[1],
	}, nil
}

// parseHorizonsDateTime parses Horizons date format like "2025-Dec-05 00:00".
func parseHorizonsDateTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-Jan-02 15:04", s)
	if err == nil {
		return t.UTC(), nil
	}

	t, err = time.Parse("2006-Jan-02 15:04:05", s)
	if err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
