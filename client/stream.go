package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"sync"
	"time"

	ai "github.com/spetersoncode/gptrouter"
	"github.com/spetersoncode/gptrouter/internal/sse"
)

// Stream is a lazily read sequence of chunks from one streaming call.
// Chunks arrive in the order the router sent them. A Stream is consumed
// at most once and must be closed unless it was read to the end.
//
//	s, err := c.GenerateStream(ctx, reqs)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	for s.Next() {
//	    fmt.Print(s.Current().Data.Text)
//	}
//	return s.Err()
type Stream struct {
	ctx     context.Context
	cancel  context.CancelFunc
	body    io.ReadCloser
	lines   *sse.LineReader
	timer   *idleTimer
	release func()
	trace   *callTrace
	status  int

	current *ai.ChunkedGenerationResponse
	chunks  int
	err     error
	done    bool
}

// StreamEvent is one item of an async stream: either a chunk or the
// error that ended the stream.
type StreamEvent struct {
	Chunk *ai.ChunkedGenerationResponse
	Err   error
}

// StreamEvents opens a streaming request and returns its chunks.
//
// Connection failures are reported like Call reports them, except that a
// timeout is an *ai.StreamTimeoutError. Once open, the stream ends when
// the router closes the connection, when it sends an error frame
// (*ai.StreamingError), or when a read stalls past the timeout
// (*ai.StreamTimeoutError). Malformed lines are skipped.
func (c *Client) StreamEvents(ctx context.Context, method, path string, payload any) (*Stream, error) {
	return c.openStream(ctx, "stream", method, path, payload)
}

// StreamEventsAsync opens a stream and delivers it on a channel. The
// channel is closed when the stream ends; a terminal error arrives as the
// last event. Cancel ctx to stop early.
func (c *Client) StreamEventsAsync(ctx context.Context, method, path string, payload any) (<-chan StreamEvent, error) {
	s, err := c.StreamEvents(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	return pipe(ctx, s), nil
}

func (c *Client) openStream(ctx context.Context, op, method, path string, payload any) (*Stream, error) {
	target := BuildURL(c.baseURL, path)
	t := c.trace(op, target)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, t.fail(0, fmt.Errorf("marshal payload: %w", err))
	}

	streamCtx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(streamCtx, method, target, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, t.fail(0, fmt.Errorf("create request: %w", err))
	}
	applyHeaders(req, c.apiKey)

	hc, release := c.httpClientFor(true)
	timer := newIdleTimer(c.timeout, cancel)

	timer.start()
	resp, err := hc.Do(req)
	timer.pause()
	if err != nil {
		cancel()
		release()
		return nil, t.fail(0, streamReadError(ctx, timer, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, readErr := io.ReadAll(idleReader{r: resp.Body, t: timer})
		resp.Body.Close()
		cancel()
		release()
		if readErr != nil {
			return nil, t.fail(resp.StatusCode, streamReadError(ctx, timer, readErr))
		}
		return nil, t.fail(resp.StatusCode, ai.NewAPIError(resp.StatusCode, decodeErrorBody(data), resp.Header))
	}

	return &Stream{
		ctx:     ctx,
		cancel:  cancel,
		body:    resp.Body,
		lines:   sse.NewLineReader(idleReader{r: resp.Body, t: timer}),
		timer:   timer,
		release: release,
		trace:   t,
		status:  resp.StatusCode,
	}, nil
}

// Next advances to the next chunk. It returns false when the stream is
// over; check Err to see why.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	for {
		line, err := s.lines.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.finish(nil)
			} else {
				s.finish(streamReadError(s.ctx, s.timer, err))
			}
			return false
		}

		out := sse.Classify(line)
		switch out.Action {
		case sse.Fail:
			s.finish(&ai.StreamingError{Payload: out.Payload})
			return false
		case sse.Yield:
			chunk, err := ai.DecodeChunk(out.Data)
			if err != nil {
				s.trace.c.logger.Debug("skipping stream frame", "request_id", s.trace.id, "error", err)
				continue
			}
			s.current = chunk
			s.chunks++
			s.trace.chunk(s.chunks)
			return true
		default:
			if strings.TrimSpace(line) != "" {
				s.trace.c.logger.Debug("skipping stream line", "request_id", s.trace.id, "reason", out.Reason)
			}
		}
	}
}

// Current returns the chunk read by the last successful Next.
func (s *Stream) Current() *ai.ChunkedGenerationResponse {
	return s.current
}

// Err returns the error that ended the stream, or nil if it ended
// normally or has not ended.
func (s *Stream) Err() error {
	return s.err
}

// Close releases the connection. It is safe to call more than once and
// after the stream has ended.
func (s *Stream) Close() error {
	if !s.done {
		s.finish(nil)
	}
	return nil
}

// All returns an iterator over the remaining chunks. A terminal error is
// yielded last with a nil chunk. The stream is closed when iteration stops.
func (s *Stream) All() iter.Seq2[*ai.ChunkedGenerationResponse, error] {
	return func(yield func(*ai.ChunkedGenerationResponse, error) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.Current(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func (s *Stream) finish(err error) {
	s.done = true
	s.err = err
	s.current = nil
	s.timer.pause()
	s.body.Close()
	s.cancel()
	s.release()
	if err != nil {
		s.trace.fail(s.status, err)
		return
	}
	s.trace.complete(s.status, s.chunks)
}

func pipe(ctx context.Context, s *Stream) <-chan StreamEvent {
	ch := make(chan StreamEvent)
	go func() {
		defer close(ch)
		defer s.Close()
		for s.Next() {
			select {
			case <-ctx.Done():
				return
			case ch <- StreamEvent{Chunk: s.Current()}:
			}
		}
		if err := s.Err(); err != nil {
			select {
			case <-ctx.Done():
			case ch <- StreamEvent{Err: err}:
			}
		}
	}()
	return ch
}

// streamReadError maps a failed stream read to the caller-facing error.
func streamReadError(ctx context.Context, timer *idleTimer, err error) error {
	if timer.fired() {
		return &ai.StreamTimeoutError{Timeout: timer.d, Cause: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if isTimeout(err) {
		return &ai.StreamTimeoutError{Timeout: timer.d, Cause: err}
	}
	return fmt.Errorf("read stream: %w", err)
}

// idleTimer cancels a stream when a single wait for data runs past d.
// It only runs while a read is in flight. Each read arms its own timer; a callback that lands after its
// read finished, or after a later read started, is ignored.
type idleTimer struct {
	d        time.Duration
	onExpire func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	reading bool
	expired bool
}

func newIdleTimer(d time.Duration, onExpire func()) *idleTimer {
	return &idleTimer{d: d, onExpire: onExpire}
}

func (t *idleTimer) start() {
	if t.d <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.expired {
		return
	}
	t.gen++
	t.reading = true
	gen := t.gen
	t.timer = time.AfterFunc(t.d, func() { t.expire(gen) })
}

func (t *idleTimer) pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reading = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *idleTimer) expire(gen uint64) {
	t.mu.Lock()
	if t.expired || !t.reading || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.expired = true
	t.mu.Unlock()
	t.onExpire()
}

func (t *idleTimer) fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

type idleReader struct {
	r io.Reader
	t *idleTimer
}

func (r idleReader) Read(p []byte) (int, error) {
	r.t.start()
	defer r.t.pause()
	return r.r.Read(p)
}
