package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(&config.HTTPConfig{
		Timeout:         5 * time.Second,
		MaxIdleConns:    2,
		MaxConnsPerHost: 2,
		UserAgent:       "test-agent",
		IdleConnTimeout: time.Second,
	})
}

func TestClient_GetOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"obituaries":[]}`))
	}))
	defer srv.Close()

	resp, err := testClient().GetOK(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"obituaries":[]}`, string(resp.Body))
}

func TestClient_GetOK_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := testClient().GetOK(context.Background(), srv.URL)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)

	// Plain Get hands back the response untouched.
	resp, err := testClient().Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
