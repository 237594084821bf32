package sender_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prilive-com/oshibot/internal/testutil"
	"github.com/prilive-com/oshibot/oshi"
	"github.com/prilive-com/oshibot/sender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_429ThenSuccess(t *testing.T) {
	server := testutil.NewMockServer(t)
	var calls atomic.Int32
	server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			testutil.ReplyRateLimit(w)
			return
		}
		testutil.ReplySend(w, testutil.TestGroupID, 2, 2)
	})

	sleeper := &testutil.FakeSleeper{}
	client := testutil.NewRetryTestClient(t, server.BaseURL(), sleeper)

	resp, err := client.Send(context.Background(), testutil.TestGroupID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "msg-"+testutil.TestGroupID, resp["messageId"])

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, sleeper.CallCount())
	assert.Equal(t, 5*time.Second, sleeper.LastCall())
}

func TestRetry_AtMostOnce(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyRateLimit(w)
	})

	sleeper := &testutil.FakeSleeper{}
	client := testutil.NewRetryTestClient(t, server.BaseURL(), sleeper)

	resp, err := client.Send(context.Background(), testutil.TestGroupID, "hello")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, sender.ErrRateLimited)

	var e *oshi.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, oshi.KindRateLimit, e.Kind)
	assert.Equal(t, 429, e.Status)
	assert.Equal(t, "Rate limit: max 60 messages/minute", e.Message)

	assert.Equal(t, 2, server.CaptureCount())
	assert.Equal(t, 1, sleeper.CallCount())
}

func TestRetry_Disabled(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyRateLimit(w)
	})

	sleeper := &testutil.FakeSleeper{}
	client := testutil.NewRetryTestClient(t, server.BaseURL(), sleeper, sender.WithAutoRetry(false))

	_, err := client.Send(context.Background(), testutil.TestGroupID, "hello")
	require.Error(t, err)
	assert.Equal(t, oshi.KindRateLimit, oshi.KindOf(err))

	assert.Equal(t, 1, server.CaptureCount())
	assert.Equal(t, 0, sleeper.CallCount())
}

func TestRetry_CustomDelay(t *testing.T) {
	server := testutil.NewMockServer(t)
	var calls atomic.Int32
	server.OnGet(sender.PathList, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			testutil.ReplyRateLimit(w)
			return
		}
		testutil.ReplyBotList(w)
	})

	sleeper := &testutil.FakeSleeper{}
	client := testutil.NewRetryTestClient(t, server.BaseURL(), sleeper, sender.WithRetryDelay(1500*time.Millisecond))

	_, err := client.ListBots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, sleeper.Calls())
}

func TestRetry_SameRequestResent(t *testing.T) {
	server := testutil.NewMockServer(t)
	var calls atomic.Int32
	server.OnGet(sender.PathInfo, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			testutil.ReplyRateLimit(w)
			return
		}
		testutil.ReplyInfo(w)
	})

	client := testutil.NewTestClient(t, server.BaseURL())

	_, err := client.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, server.CaptureCount())

	first, second := server.CaptureAt(0), server.CaptureAt(1)
	assert.Equal(t, first.AssertRequestID(t), second.AssertRequestID(t))
	assert.Equal(t, first.Method, second.Method)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Query, second.Query)
	assert.Equal(t, first.Body, second.Body)
}

func TestRetry_SameBodyResent(t *testing.T) {
	server := testutil.NewMockServer(t)
	var calls atomic.Int32
	server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			testutil.ReplyRateLimit(w)
			return
		}
		testutil.ReplySend(w, testutil.TestGroupID, 1, 1)
	})

	client := testutil.NewTestClient(t, server.BaseURL())

	_, err := client.Send(context.Background(), testutil.TestGroupID, "same every time")
	require.NoError(t, err)
	require.Equal(t, 2, server.CaptureCount())

	first, second := server.CaptureAt(0), server.CaptureAt(1)
	assert.Equal(t, first.AssertRequestID(t), second.AssertRequestID(t))
	assert.JSONEq(t, string(first.Body), string(second.Body))
}

func TestRetry_429ThenTransportFailure(t *testing.T) {
	server := testutil.NewMockServer(t)
	var calls atomic.Int32
	server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			testutil.ReplyRateLimit(w)
			return
		}
		// Drop the connection without answering.
		conn, _, err := w.(http.Hijacker).Hijack()
		if assert.NoError(t, err) {
			_ = conn.Close()
		}
	})

	sleeper := &testutil.FakeSleeper{}
	client := testutil.NewRetryTestClient(t, server.BaseURL(), sleeper)

	resp, err := client.Send(context.Background(), testutil.TestGroupID, "hello")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, sender.ErrRateLimited)
	assert.ErrorIs(t, err, sender.ErrTransport, "the failed retry is kept as the cause")

	var e *oshi.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, oshi.KindRateLimit, e.Kind)
	assert.Equal(t, 429, e.Status)
	assert.Equal(t, "Rate limit: max 60 messages/minute", e.Message)
	assert.NotEmpty(t, e.RequestID)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, sleeper.CallCount())
}

func TestRetry_NotForOtherStatuses(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 500, 503} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := testutil.NewMockServer(t)
			server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
				testutil.ReplyError(w, status, "nope")
			})

			sleeper := &testutil.FakeSleeper{}
			client := testutil.NewRetryTestClient(t, server.BaseURL(), sleeper)

			_, err := client.Send(context.Background(), testutil.TestGroupID, "x")
			require.Error(t, err)
			assert.Equal(t, 1, server.CaptureCount())
			assert.Equal(t, 0, sleeper.CallCount())
		})
	}
}

func TestRetry_CancelledDuringPause(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyRateLimit(w)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := testutil.NewTestClient(t, server.BaseURL(),
		sender.WithSleeper(testutil.CancelingSleeper{Cancel: cancel}))

	_, err := client.Send(ctx, testutil.TestGroupID, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, sender.ErrRateLimited)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, server.CaptureCount(), "no second attempt after cancellation")
}

func TestRetry_RealSleeperHonoursDelay(t *testing.T) {
	if testing.Short() {
		t.Skip("uses wall-clock time")
	}

	server := testutil.NewMockServer(t)
	var calls atomic.Int32
	server.OnGet(sender.PathList, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			testutil.ReplyRateLimit(w)
			return
		}
		testutil.ReplyBotList(w)
	})

	client, err := sender.New(testutil.TestToken,
		sender.WithBaseURL(server.BaseURL()),
		sender.WithRetryDelay(50*time.Millisecond),
	)
	require.NoError(t, err)
	defer client.Close()

	start := time.Now()
	_, err = client.ListBots(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
