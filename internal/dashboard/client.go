// Package dashboard polls the game server admin endpoint and pushes what it finds
// to a RenderTarget.
package dashboard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/janpfeifer/DouAdmin/internal/config"
	"github.com/janpfeifer/DouAdmin/internal/game"
	"k8s.io/klog/v2"
)

// RequestIDHeader carries a random ID per refresh, so the game server logs can be matched
// with the dashboard's.
const RequestIDHeader = "X-Request-Id"

// Client fetches the admin state and renders it.
//
// Each Refresh takes a sequence number before issuing its request. Responses are applied
// in sequence order only: a response older than the last applied one is dropped, so a slow
// request can never overwrite the result of a newer one.
type Client struct {
	cfg      config.Config
	http     *http.Client
	target   RenderTarget
	loc      *Localizer
	renderer *Renderer
	now      func() time.Time

	seq atomic.Uint64

	mu      sync.Mutex // Serializes updates to target.
	applied uint64     // Sequence number of the last applied response.
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient sets the HTTP client used for requests. The default is http.DefaultClient.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock sets the clock used for the "refreshed at" time.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a client for the given configuration, rendering to target.
// It sets the pending status on target.
func NewClient(cfg config.Config, target RenderTarget, opts ...Option) *Client {
	loc := NewLocalizer(cfg.Locale)
	c := &Client{
		cfg:      cfg,
		http:     http.DefaultClient,
		target:   target,
		loc:      loc,
		renderer: NewRenderer(loc, cfg.HistoryLimit),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	target.SetStatus(PendingStatus(loc))
	return c
}

// Localizer used for the rendered texts.
func (c *Client) Localizer() *Localizer {
	return c.loc
}

// Poll refreshes immediately and then once every PollInterval, until ctx is done.
//
// Refreshes run in their own goroutine, so a slow request never delays the next one.
// Errors only show in the status indicator and in the logs; polling never stops on them.
// Poll returns after the in-flight refreshes finish.
func (c *Client) Poll(ctx context.Context) {
	var wg sync.WaitGroup
	refresh := func() {
		wg.Go(func() { c.refreshAndLog(ctx) })
	}

	klog.Infof("Polling %s/admin/state every %s", c.cfg.BackendHTTPBase, c.cfg.PollInterval)
	refresh()
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			klog.V(1).Infof("Poll: stopping, waiting for in-flight requests")
			wg.Wait()
			return
		case <-ticker.C:
			refresh()
		}
	}
}

func (c *Client) refreshAndLog(ctx context.Context) {
	err := c.Refresh(ctx)
	var statusErr *StatusError
	var decodeErr *DecodeError
	switch {
	case err == nil:
		return
	case errors.Is(err, ErrStale):
		klog.V(1).Infof("Refresh: %v", err)
	case ctx.Err() != nil:
		klog.V(1).Infof("Refresh: cancelled: %v", err)
	case errors.As(err, &statusErr):
		klog.Warningf("Refresh: %v", err)
	case errors.As(err, &decodeErr):
		klog.Errorf("Refresh: %v", err)
	default:
		klog.Errorf("Refresh: %v", err)
	}
}

// Refresh fetches the state once and applies it to the render target:
//
//   - On success all regions are re-rendered and the status shows the refresh time.
//   - On a non-2xx answer (StatusError) only the status changes, showing the code.
//   - On transport (TransportError) or decoding (DecodeError) failures only the status
//     changes, showing a generic error.
//   - If a newer response was already applied, nothing changes and ErrStale is returned.
//   - If ctx is cancelled before the response arrives, nothing changes and ctx's error
//     is returned.
func (c *Client) Refresh(ctx context.Context) error {
	seq := c.seq.Add(1)
	snap, err := c.fetch(ctx)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return c.apply(seq, snap, err)
}

func (c *Client) fetch(ctx context.Context) (*game.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.StateURL(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	klog.V(2).Infof("fetch: request %s", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bit so the connection can be reused, the body itself is ignored.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	snap, err := game.DecodeSnapshot(body)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	klog.V(2).Infof("fetch: request %s: %s", requestID, snap)
	return snap, nil
}

func (c *Client) apply(seq uint64, snap *game.Snapshot, fetchErr error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		if fetchErr != nil {
			return errors.Join(ErrStale, fetchErr)
		}
		return ErrStale
	}
	c.applied = seq

	if fetchErr != nil {
		c.target.SetStatus(c.failureStatus(fetchErr))
		return fetchErr
	}
	c.renderer.Render(snap, c.target)
	c.target.SetStatus(Status{
		State: StatusOK,
		Text:  c.loc.sprintf(msgStatusRefreshed, c.now().Format(time.TimeOnly)),
	})
	return nil
}

func (c *Client) failureStatus(err error) Status {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return Status{State: StatusBad, Text: c.loc.sprintf(msgStatusFailedCode, strconv.Itoa(statusErr.Code))}
	}
	return Status{State: StatusBad, Text: c.loc.sprintf(msgStatusError)}
}
