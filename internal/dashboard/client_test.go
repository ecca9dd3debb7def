package dashboard

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshSuccess(t *testing.T) {
	var gotReq *http.Request
	hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
		gotReq = req
		return jsonResponse(http.StatusOK, scenarioJSON), nil
	})
	target := newRecordingTarget()
	c := NewClient(testConfig(), target, WithHTTPClient(hc), WithClock(fixedNow))
	assert.Equal(t, Status{State: StatusPending, Text: "状态：等待中"}, target.Status())

	require.NoError(t, c.Refresh(context.Background()))

	require.NotNil(t, gotReq)
	assert.Equal(t, http.MethodGet, gotReq.Method)
	assert.Equal(t, "/admin/state", gotReq.URL.Path)
	assert.Equal(t, "admin", gotReq.URL.Query().Get("token"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
	_, err := uuid.Parse(gotReq.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "request id should be a UUID")

	assert.Equal(t, Status{State: StatusOK, Text: "状态：已刷新 12:34:56"}, target.Status())
	require.Len(t, target.players, 1)
	assert.Equal(t, "p1（地主）", target.players[0].Title)
	assert.Equal(t, []string{"p1: A (play)"}, target.history.Lines)
}

func TestRefreshServerRejected(t *testing.T) {
	code := http.StatusOK
	hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
		if code != http.StatusOK {
			return jsonResponse(code, `{"detail": "boom"}`), nil
		}
		return jsonResponse(code, scenarioJSON), nil
	})
	target := newRecordingTarget()
	c := NewClient(testConfig(), target, WithHTTPClient(hc), WithClock(fixedNow))
	require.NoError(t, c.Refresh(context.Background()))
	playersBefore := target.players
	bottomBefore := target.bottom

	code = http.StatusInternalServerError
	err := c.Refresh(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.Code)

	status := target.Status()
	assert.Equal(t, StatusBad, status.State)
	assert.Equal(t, "状态：请求失败 500", status.Text)
	assert.Contains(t, status.Text, "500")

	// The regions keep the previous render.
	assert.Equal(t, 1, target.Calls("players"))
	assert.Equal(t, 1, target.Calls("bottom"))
	assert.Equal(t, 1, target.Calls("info"))
	assert.Equal(t, 1, target.Calls("history"))
	assert.Equal(t, playersBefore, target.players)
	assert.Equal(t, bottomBefore, target.bottom)

	// And recover on the next success.
	code = http.StatusOK
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, StatusOK, target.Status().State)
}

func TestRefreshTransportFailure(t *testing.T) {
	offline := errors.New("network is unreachable")
	hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
		return nil, offline
	})
	target := newRecordingTarget()
	c := NewClient(testConfig(), target, WithHTTPClient(hc))

	err := c.Refresh(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, offline)
	assert.Equal(t, Status{State: StatusBad, Text: "状态：错误"}, target.Status())
	assert.Zero(t, target.Calls("players"))
}

func TestRefreshDecodeFailure(t *testing.T) {
	hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `<html>not json</html>`), nil
	})
	cfg := testConfig()
	cfg.Locale = "en"
	target := newRecordingTarget()
	c := NewClient(cfg, target, WithHTTPClient(hc))

	err := c.Refresh(context.Background())
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, Status{State: StatusBad, Text: "Status: error"}, target.Status())
	assert.Zero(t, target.Calls("players"))
}

func TestRefreshTimeout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		})
		cfg := testConfig()
		cfg.RequestTimeout = 50 * time.Millisecond
		target := newRecordingTarget()
		c := NewClient(cfg, target, WithHTTPClient(hc))

		err := c.Refresh(context.Background())
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, StatusBad, target.Status().State)
	})
}

func TestRefreshCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
		cancel()
		return nil, context.Canceled
	})
	target := newRecordingTarget()
	c := NewClient(testConfig(), target, WithHTTPClient(hc))

	err := c.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusPending, target.Status().State)
	assert.Equal(t, 1, target.Calls("status"))
}

func TestRefreshDiscardsStaleResponses(t *testing.T) {
	for _, staleCode := range []int{http.StatusOK, http.StatusBadGateway} {
		release := make(chan struct{})
		var requests atomic.Int32
		hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
			if requests.Add(1) == 1 {
				<-release
				if staleCode != http.StatusOK {
					return jsonResponse(staleCode, ``), nil
				}
				return jsonResponse(http.StatusOK, `{"players": {"old": {}}, "landlord_id": "old"}`), nil
			}
			return jsonResponse(http.StatusOK, `{"players": {"new": {}}, "landlord_id": "new"}`), nil
		})
		target := newRecordingTarget()
		c := NewClient(testConfig(), target, WithHTTPClient(hc))

		slow := make(chan error, 1)
		go func() { slow <- c.Refresh(context.Background()) }()
		require.Eventually(t, func() bool { return requests.Load() == 1 }, time.Second, time.Millisecond)

		require.NoError(t, c.Refresh(context.Background()))
		close(release)
		err := <-slow
		assert.ErrorIs(t, err, ErrStale)

		require.Len(t, target.players, 1)
		assert.Equal(t, "new", target.players[0].ID)
		assert.Equal(t, StatusOK, target.Status().State)
		assert.Equal(t, 1, target.Calls("players"))
		assert.Equal(t, "地主ID：new", target.infoTexts()[0])
	}
}

func TestPollCadence(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var requests atomic.Int32
		hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
			requests.Add(1)
			return jsonResponse(http.StatusOK, `{}`), nil
		})
		target := newRecordingTarget()
		c := NewClient(testConfig(), target, WithHTTPClient(hc))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			c.Poll(ctx)
			close(done)
		}()

		// One immediate refresh.
		synctest.Wait()
		assert.Equal(t, int32(1), requests.Load())
		assert.Equal(t, StatusOK, target.Status().State)

		// Then one per second.
		time.Sleep(3500 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(4), requests.Load())

		cancel()
		<-done
		time.Sleep(5 * time.Second)
		synctest.Wait()
		assert.Equal(t, int32(4), requests.Load(), "no requests after Poll returns")
	})
}

func TestPollKeepsGoingOnErrors(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var requests atomic.Int32
		hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
			switch requests.Add(1) {
			case 1:
				return nil, errors.New("connection refused")
			case 2:
				return jsonResponse(http.StatusServiceUnavailable, ``), nil
			default:
				return jsonResponse(http.StatusOK, scenarioJSON), nil
			}
		})
		target := newRecordingTarget()
		c := NewClient(testConfig(), target, WithHTTPClient(hc))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go c.Poll(ctx)

		synctest.Wait()
		assert.Equal(t, "状态：错误", target.Status().Text)

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, "状态：请求失败 503", target.Status().Text)

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, StatusOK, target.Status().State)
		require.Len(t, target.players, 1)
	})
}

func TestPollOverlappingRequests(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		// The first request takes 2.5s, the following ones answer at once: the first
		// response arrives last and must be dropped.
		var requests atomic.Int32
		hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
			if requests.Add(1) == 1 {
				time.Sleep(2500 * time.Millisecond)
				return jsonResponse(http.StatusOK, `{"landlord_id": "first"}`), nil
			}
			return jsonResponse(http.StatusOK, `{"landlord_id": "later"}`), nil
		})
		target := newRecordingTarget()
		c := NewClient(testConfig(), target, WithHTTPClient(hc))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			c.Poll(ctx)
			close(done)
		}()

		time.Sleep(3 * time.Second)
		synctest.Wait()
		assert.Equal(t, "地主ID：later", target.infoTexts()[0])
		assert.Equal(t, 3, target.Calls("info"), "ticks at 1s, 2s and 3s applied, first response dropped")

		cancel()
		<-done
	})
}

func TestRefreshToleratesUnexpectedShapes(t *testing.T) {
	for _, body := range []string{
		`{"players": [], "landlord_id": "p1"}`,
		`{"multiplier": 2.0}`,
		`{"hand_count": "2"}`,
		`{"players": {"p1": {"hand_count": "2", "hand": null}}, "game_over": "yes"}`,
	} {
		hc := httpClientFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		})
		target := newRecordingTarget()
		c := NewClient(testConfig(), target, WithHTTPClient(hc), WithClock(fixedNow))

		require.NoError(t, c.Refresh(context.Background()), body)
		assert.Equal(t, Status{State: StatusOK, Text: "状态：已刷新 12:34:56"}, target.Status(), body)
		assert.Equal(t, 1, target.Calls("players"), body)
		assert.Equal(t, 1, target.Calls("history"), body)
	}
}
