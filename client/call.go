package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	ai "github.com/spetersoncode/gptrouter"
	"github.com/tidwall/gjson"
)

// Call performs one unary request and returns the raw JSON body.
//
// A 200 response returns its body. 202 and 204 return a nil body and no
// error. Any other status returns an *ai.APIError classified by status.
// A transport timeout returns an *ai.APITimeoutError. If ctx is done
// first, its error is returned.
func (c *Client) Call(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	return c.call(ctx, "call", method, path, payload)
}

// CallAsync runs Call on its own goroutine.
func (c *Client) CallAsync(ctx context.Context, method, path string, payload any) *Future[json.RawMessage] {
	return goFuture(func() (json.RawMessage, error) {
		return c.Call(ctx, method, path, payload)
	})
}

func (c *Client) call(ctx context.Context, op, method, path string, payload any) (json.RawMessage, error) {
	target := BuildURL(c.baseURL, path)
	t := c.trace(op, target)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, t.fail(0, fmt.Errorf("marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, t.fail(0, fmt.Errorf("create request: %w", err))
	}
	applyHeaders(req, c.apiKey)

	hc, release := c.httpClientFor(false)
	defer release()

	resp, err := hc.Do(req)
	if err != nil {
		return nil, t.fail(0, c.unaryTransportError(ctx, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.fail(resp.StatusCode, c.unaryTransportError(ctx, err))
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if !gjson.ValidBytes(data) {
			return nil, t.fail(resp.StatusCode, &ai.DecodeError{Target: "response body", Err: fmt.Errorf("invalid JSON")})
		}
		t.complete(resp.StatusCode, 0)
		return json.RawMessage(data), nil
	case http.StatusAccepted, http.StatusNoContent:
		t.complete(resp.StatusCode, 0)
		return nil, nil
	default:
		return nil, t.fail(resp.StatusCode, ai.NewAPIError(resp.StatusCode, decodeErrorBody(data), resp.Header))
	}
}

func (c *Client) unaryTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if isTimeout(err) {
		return &ai.APITimeoutError{Cause: err}
	}
	return fmt.Errorf("router request: %w", err)
}
