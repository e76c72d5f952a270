package client

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/gptrouter"
)

// Router endpoints.
const (
	PathGenerate      = "/v1/generate"
	PathGenerateImage = "/v1/generate/generate-image"
)

// HeaderSecret carries the API key.
const HeaderSecret = "ws-secret"

// BuildURL joins baseURL and path, inserting /api when baseURL does not
// already end with it. One trailing slash on baseURL is ignored.
func BuildURL(baseURL, path string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return base + path
}

func applyHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSecret, apiKey)
}

// httpClientFor returns the client for one call and a release func.
// Streams get no overall timeout; their reads are bounded by an idle timer.
func (c *Client) httpClientFor(streaming bool) (*http.Client, func()) {
	if c.httpClient != nil {
		hc := *c.httpClient
		if streaming {
			hc.Timeout = 0
		} else if hc.Timeout == 0 {
			hc.Timeout = c.timeout
		}
		return &hc, func() {}
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	hc := &http.Client{Transport: tr}
	if !streaming {
		hc.Timeout = c.timeout
	}
	return hc, tr.CloseIdleConnections
}

// isTimeout reports whether err is a transport-level timeout.
func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// decodeErrorBody returns the JSON-decoded body, or the raw text when the
// body is not JSON.
func decodeErrorBody(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

// callTrace emits the lifecycle events for one request.
type callTrace struct {
	c     *Client
	op    string
	id    string
	url   string
	start time.Time
}

func (c *Client) trace(op, target string) *callTrace {
	t := &callTrace{c: c, op: op, id: uuid.NewString(), url: target, start: time.Now()}
	c.logger.Debug("router request", "op", op, "url", target, "request_id", t.id)
	emit(c.events, Event{Type: EventRequestStart, Operation: op, RequestID: t.id, URL: target})
	return t
}

func (t *callTrace) complete(status, chunks int) {
	emit(t.c.events, Event{
		Type:       EventRequestComplete,
		Operation:  t.op,
		RequestID:  t.id,
		URL:        t.url,
		StatusCode: status,
		Chunks:     chunks,
		Duration:   time.Since(t.start),
	})
}

func (t *callTrace) chunk(n int) {
	emit(t.c.events, Event{Type: EventStreamChunk, Operation: t.op, RequestID: t.id, URL: t.url, Chunks: n})
}

func (t *callTrace) fail(status int, err error) error {
	attrs := []any{"op", t.op, "request_id", t.id, "status", status, "error", err}
	if kind := ai.KindOf(err); kind != "" {
		attrs = append(attrs, "kind", string(kind))
	}
	t.c.logger.Debug("router request failed", attrs...)
	emit(t.c.events, Event{
		Type:       EventRequestError,
		Operation:  t.op,
		RequestID:  t.id,
		URL:        t.url,
		StatusCode: status,
		Duration:   time.Since(t.start),
		Error:      err,
	})
	return err
}
