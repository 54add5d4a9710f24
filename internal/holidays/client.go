// Package holidays looks up today's public holidays in the Russian calendar API.
package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/metrics"
)

// ErrBadStatus is returned by Fetch when the API answers with a non-2xx code.
var ErrBadStatus = errors.New("holidays: unexpected status")

// entry is one element of the GET /holidays response.
type entry struct {
	Date        string `json:"date"`
	HolidayName string `json:"holidayName"`
}

// Client queries {base}/holidays.
type Client struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

// NewClient builds a client for the API rooted at base. Every request is
// bounded by timeout.
func NewClient(base string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(base, "/") + "/holidays",
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Fetch returns the names of holidays dated on now's calendar day, in the
// order the API lists them.
func (c *Client) Fetch(ctx context.Context, now time.Time) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}

	today := now.Format("2006-01-02")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Date == today && e.HolidayName != "" {
			names = append(names, e.HolidayName)
		}
	}
	return names, nil
}

// Today is Fetch that never fails: any error is logged and counted, and an
// empty list is returned.
func (c *Client) Today(ctx context.Context, now time.Time) []string {
	names, err := c.Fetch(ctx, now)
	if err != nil {
		metrics.HolidayFailures.Inc()
		c.log.Warn("holiday lookup failed", zap.Error(err))
		return []string{}
	}
	return names
}
