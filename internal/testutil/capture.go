package testutil

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Capture is one request as the mock server received it.
type Capture struct {
	Method      string
	Path        string
	Query       url.Values
	Headers     http.Header
	Body        []byte
	ContentType string
	RequestID   string
}

func (c *Capture) AssertPath(t *testing.T, expected string) {
	t.Helper()
	assert.Equal(t, expected, c.Path, "path")
}

func (c *Capture) AssertMethod(t *testing.T, expected string) {
	t.Helper()
	assert.Equal(t, expected, c.Method, "method")
}

// AssertContentType checks that Content-Type contains expected, so charset
// parameters are tolerated.
func (c *Capture) AssertContentType(t *testing.T, expected string) {
	t.Helper()
	assert.Contains(t, c.ContentType, expected, "content-type")
}

func (c *Capture) AssertHeader(t *testing.T, key, expected string) {
	t.Helper()
	assert.Equal(t, expected, c.Headers.Get(key), "header %s", key)
}

// AssertRequestID checks that X-Request-ID holds a UUID and returns it, so
// callers can compare IDs across attempts.
func (c *Capture) AssertRequestID(t *testing.T) string {
	t.Helper()
	_, err := uuid.Parse(c.RequestID)
	assert.NoError(t, err, "X-Request-ID should be a UUID, got %q", c.RequestID)
	return c.RequestID
}

func (c *Capture) AssertQuery(t *testing.T, key, expected string) {
	t.Helper()
	if !c.Query.Has(key) {
		t.Errorf("query parameter %q not found", key)
		return
	}
	assert.Equal(t, expected, c.Query.Get(key), "query parameter %s", key)
}

func (c *Capture) AssertNoQuery(t *testing.T) {
	t.Helper()
	assert.Empty(t, c.Query, "query string")
}

func (c *Capture) AssertEmptyBody(t *testing.T) {
	t.Helper()
	assert.Empty(t, c.Body, "body")
}

// AssertJSONField compares one top-level field of the JSON body. Numbers
// decode as float64 and arrays as []any.
func (c *Capture) AssertJSONField(t *testing.T, field string, expected any) {
	t.Helper()
	assert.Equal(t, expected, c.BodyMap(t)[field], "body field %s", field)
}

func (c *Capture) AssertJSONFieldExists(t *testing.T, field string) {
	t.Helper()
	assert.Contains(t, c.BodyMap(t), field)
}

func (c *Capture) AssertJSONFieldAbsent(t *testing.T, field string) {
	t.Helper()
	assert.NotContains(t, c.BodyMap(t), field)
}

// BodyJSON decodes the body into target, failing the test on error.
func (c *Capture) BodyJSON(t *testing.T, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(c.Body, target), "decode body")
}

// BodyMap decodes the body as a JSON object.
func (c *Capture) BodyMap(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	c.BodyJSON(t, &m)
	return m
}
