// internal/infra/opennotify/client.go
package opennotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"iss_overhead_notifier/internal/domain/station"
	"iss_overhead_notifier/internal/infra/retry"
)

const DefaultURL = "http://api.open-notify.org/iss-now.json"

var ErrUnexpectedMessage = errors.New("open-notify did not report success")

// Client queries the open-notify ISS position endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Degrees decodes a JSON number or a JSON string holding a number.
type Degrees float64

func (d *Degrees) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("degrees %s: %w", string(b), err)
	}
	*d = Degrees(v)
	return nil
}

type issNowResponse struct {
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	ISSPosition *struct {
		Latitude  Degrees `json:"latitude"`
		Longitude Degrees `json:"longitude"`
	} `json:"iss_position"`
}

// CurrentPosition implements station.Locator.
func (c *Client) CurrentPosition(ctx context.Context) (station.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return station.Position{}, retry.Permanent(fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return station.Position{}, fmt.Errorf("fetching ISS position: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return station.Position{}, err
	}

	var body issNowResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return station.Position{}, retry.Permanent(fmt.Errorf("decoding ISS position: %w", err))
	}
	if body.Message != "" && body.Message != "success" {
		return station.Position{}, fmt.Errorf("%w: %q", ErrUnexpectedMessage, body.Message)
	}
	if body.ISSPosition == nil {
		return station.Position{}, retry.Permanent(errors.New("decoding ISS position: iss_position missing"))
	}

	pos := station.Position{
		Latitude:  float64(body.ISSPosition.Latitude),
		Longitude: float64(body.ISSPosition.Longitude),
	}
	if body.Timestamp > 0 {
		pos.Timestamp = time.Unix(body.Timestamp, 0).UTC()
	}
	return pos, nil
}

// checkStatus rejects non-2xx responses; client errors are not retried.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	err := fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, resp.Request.URL.Host)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return retry.Permanent(err)
	}
	return err
}
