package oshi_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/oshibot/oshi"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *oshi.Error
		expected string
	}{
		{
			name:     "bare message",
			err:      oshi.NewError(oshi.KindAPI, 0, "something broke"),
			expected: "oshibot: something broke",
		},
		{
			name: "with operation and status",
			err: &oshi.Error{
				Kind:    oshi.KindGroupAssignment,
				Status:  403,
				Message: "Bot not assigned to group",
				Method:  "POST",
				Path:    "/api/bot/send",
			},
			expected: "oshibot: POST /api/bot/send failed: Bot not assigned to group (status=403)",
		},
		{
			name:     "with cause",
			err:      oshi.NewTransportError("http://127.0.0.1:1/api/bot/info", "Connection failed: http://127.0.0.1:1/api/bot/info", errors.New("connection refused")),
			expected: "oshibot: Connection failed: http://127.0.0.1:1/api/bot/info: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_SentinelPerKind(t *testing.T) {
	tests := []struct {
		kind     oshi.Kind
		sentinel error
	}{
		{oshi.KindTransport, oshi.ErrTransport},
		{oshi.KindProtocol, oshi.ErrProtocol},
		{oshi.KindAuth, oshi.ErrUnauthorized},
		{oshi.KindGroupAssignment, oshi.ErrGroupAssignment},
		{oshi.KindNotFound, oshi.ErrNotFound},
		{oshi.KindRateLimit, oshi.ErrRateLimited},
		{oshi.KindAPI, oshi.ErrAPI},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := oshi.NewError(tt.kind, 0, "x")
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.kind, oshi.KindOf(err))
		})
	}
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	err := oshi.NewTransportError("http://host/api/bot/send", "Request timed out after 10s", context.DeadlineExceeded)

	assert.ErrorIs(t, err, oshi.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, context.DeadlineExceeded, err.Cause())
}

func TestError_AsThroughWrapping(t *testing.T) {
	inner := oshi.NewError(oshi.KindNotFound, 404, "Not found")
	wrapped := fmt.Errorf("fetch info: %w", inner)

	var e *oshi.Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, oshi.KindNotFound, e.Kind)
	assert.Equal(t, 404, e.Status)
	assert.Equal(t, oshi.KindNotFound, oshi.KindOf(wrapped))
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, oshi.Kind(0), oshi.KindOf(errors.New("plain")))
	assert.Equal(t, oshi.Kind(0), oshi.KindOf(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "group_assignment", oshi.KindGroupAssignment.String())
	assert.Equal(t, "kind(99)", oshi.Kind(99).String())
}

func TestNewProtocolError(t *testing.T) {
	err := oshi.NewProtocolError(502, errors.New("invalid character '<'"))
	assert.Equal(t, oshi.KindProtocol, err.Kind)
	assert.Equal(t, 502, err.Status)
	assert.Equal(t, "Invalid response from server (HTTP 502)", err.Message)
}

func TestNewRateLimitError(t *testing.T) {
	err := oshi.NewRateLimitError(nil)
	assert.Equal(t, oshi.KindRateLimit, err.Kind)
	assert.Equal(t, 429, err.Status)
	assert.Equal(t, "Rate limit: max 60 messages/minute", err.Message)
	assert.ErrorIs(t, err, oshi.ErrRateLimited)
}

func TestValidationError(t *testing.T) {
	err := oshi.NewValidationError("group_id", "no group specified")
	assert.Equal(t, "oshibot: validation: group_id - no group specified", err.Error())
	assert.Equal(t, oshi.Kind(0), oshi.KindOf(err))
}
