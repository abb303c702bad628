package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrAuthorityStatus is returned when the authority answers with a
// non-200 status.
var ErrAuthorityStatus = errors.New("unexpected authority status")

// AuthorityDay is what an external calendar authority reports for a date,
// in the authority's own vocabulary.
type AuthorityDay struct {
	Season string `json:"season"`
	WeekNo int    `json:"weekno"` // 0 if not applicable
	Name   string `json:"name"`
}

// Authority is an external source of liturgical calendar data.
type Authority interface {
	Lookup(ctx context.Context, isoDate string) (AuthorityDay, error)
}

// HTTPAuthority fetches calendar data from GET {BaseURL}/{YYYY-MM-DD}.
type HTTPAuthority struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAuthority creates an authority client with a bounded timeout.
func NewHTTPAuthority(baseURL string, timeout time.Duration) *HTTPAuthority {
	return &HTTPAuthority{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Lookup implements Authority.
func (a *HTTPAuthority) Lookup(ctx context.Context, isoDate string) (AuthorityDay, error) {
	url := fmt.Sprintf("%s/%s", a.baseURL, isoDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return AuthorityDay{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return AuthorityDay{}, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return AuthorityDay{}, fmt.Errorf("%w: %d", ErrAuthorityStatus, resp.StatusCode)
	}

	var day AuthorityDay
	if err := json.NewDecoder(resp.Body).Decode(&day); err != nil {
		return AuthorityDay{}, fmt.Errorf("decode authority response: %w", err)
	}
	return day, nil
}
