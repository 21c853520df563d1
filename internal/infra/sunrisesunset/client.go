// internal/infra/sunrisesunset/client.go
package sunrisesunset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"iss_overhead_notifier/internal/domain/daylight"
	"iss_overhead_notifier/internal/domain/observer"
	"iss_overhead_notifier/internal/infra/retry"
)

const DefaultURL = "https://api.sunrise-sunset.org/json"

var ErrBadStatus = errors.New("sunrise-sunset did not report OK")

// Client queries api.sunrise-sunset.org for today's sunrise and sunset.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type response struct {
	Results struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"results"`
	Status string `json:"status"`
}

// Window implements daylight.Provider. Timestamps are requested unformatted,
// which makes the API return RFC 3339 in UTC.
func (c *Client) Window(ctx context.Context, coord observer.Coordinate) (daylight.Window, error) {
	addr, err := c.url(coord)
	if err != nil {
		return daylight.Window{}, retry.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return daylight.Window{}, retry.Permanent(fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return daylight.Window{}, fmt.Errorf("fetching sun times: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, addr.Host)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return daylight.Window{}, retry.Permanent(err)
		}
		return daylight.Window{}, err
	}

	var body response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return daylight.Window{}, retry.Permanent(fmt.Errorf("decoding sun times: %w", err))
	}
	if body.Status != "OK" {
		return daylight.Window{}, retry.Permanent(fmt.Errorf("%w: %q", ErrBadStatus, body.Status))
	}

	sunrise, err := time.Parse(time.RFC3339, body.Results.Sunrise)
	if err != nil {
		return daylight.Window{}, retry.Permanent(fmt.Errorf("parsing sunrise: %w", err))
	}
	sunset, err := time.Parse(time.RFC3339, body.Results.Sunset)
	if err != nil {
		return daylight.Window{}, retry.Permanent(fmt.Errorf("parsing sunset: %w", err))
	}

	return daylight.Window{Sunrise: sunrise, Sunset: sunset}, nil
}

func (c *Client) url(coord observer.Coordinate) (*url.URL, error) {
	addr, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	addr.RawQuery = query(coord).Encode()
	return addr, nil
}

func query(coord observer.Coordinate) url.Values {
	vals := make(url.Values)
	vals.Add("lat", strconv.Itoa(coord.Latitude))
	vals.Add("lng", strconv.Itoa(coord.Longitude))
	vals.Add("formatted", "0")
	return vals
}
