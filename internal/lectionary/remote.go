package lectionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultRemoteTimeout bounds one request to the remote lectionary service.
const DefaultRemoteTimeout = 10 * time.Second

// ErrUnexpectedStatus is returned when the remote service answers with
// anything other than 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status from lectionary service")

// maxPayload caps how much of a response body is read.
const maxPayload = 1 << 20

// LectServe is a client for a LectServe-compatible web service.
type LectServe struct {
	baseURL string
	client  *http.Client
}

// NewLectServe creates a client for baseURL. A non-positive timeout uses
// DefaultRemoteTimeout.
func NewLectServe(baseURL string, timeout time.Duration) *LectServe {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &LectServe{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Lookup requests the RCL readings for a date:
// GET {base}/date/{YYYY-MM-DD}?lect=rcl.
func (l *LectServe) Lookup(ctx context.Context, date time.Time) (Readings, error) {
	endpoint := fmt.Sprintf("%s/date/%s?%s", l.baseURL, isoDate(date), url.Values{"lect": {"rcl"}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Readings{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return Readings{}, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Readings{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return Readings{}, fmt.Errorf("read response: %w", err)
	}
	return decodeRemote(body)
}

// decodeRemote accepts an object keyed by slot, an object holding an
// ordered "readings" list, or a bare list.
func decodeRemote(body []byte) (Readings, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return Readings{}, fmt.Errorf("decode response: %w", err)
	}

	var r Readings
	switch v := payload.(type) {
	case map[string]any:
		r = extractReadings(v)
	case []any:
		fillOrdered(&r, v)
	}

	if r.IsEmpty() {
		return Readings{}, ErrNotFound
	}
	return r, nil
}
