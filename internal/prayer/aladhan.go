package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// ISNA calculation method and Hanafi school, matching the values
	// the mobile client has always requested.
	defaultMethod = 2
	defaultSchool = 1

	timingsTimeout = 10 * time.Second
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// AlAdhanClient fetches daily prayer timings from an AlAdhan-compatible
// API (GET /timings/{DD-MM-YYYY}?latitude=&longitude=&method=&school=).
type AlAdhanClient struct {
	BaseURL string
	Method  int
	School  int

	httpClient *http.Client
}

func NewAlAdhanClient(baseURL string) *AlAdhanClient {
	return &AlAdhanClient{
		BaseURL:    baseURL,
		Method:     defaultMethod,
		School:     defaultSchool,
		httpClient: &http.Client{Timeout: timingsTimeout},
	}
}

type timingsResponse struct {
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// Timings implements TimingsSource. Any transport failure, timeout,
// non-200 status, or malformed time value is an error; the caller maps
// it to ErrScheduleUnavailable.
func (c *AlAdhanClient) Timings(ctx context.Context, latitude, longitude float64, date time.Time) (Timings, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format("02-01-2006"))

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("method", strconv.Itoa(c.Method))
	query.Set("school", strconv.Itoa(c.School))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Timings{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("timings request failed")
		return Timings{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Timings{}, fmt.Errorf("timings API returned status %d", resp.StatusCode)
	}

	var body timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Timings{}, fmt.Errorf("decoding timings response: %w", err)
	}
	if body.Data.Timings == nil {
		return Timings{}, fmt.Errorf("timings missing from response")
	}

	for _, name := range []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"} {
		if !clockPattern.MatchString(body.Data.Timings[name]) {
			return Timings{}, fmt.Errorf("invalid or missing time for %s", name)
		}
	}

	t := body.Data.Timings
	return Timings{
		Fajr:    t["Fajr"],
		Dhuhr:   t["Dhuhr"],
		Asr:     t["Asr"],
		Maghrib: t["Maghrib"],
		Isha:    t["Isha"],
	}, nil
}
