package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClient_Get(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "https://example.org/", r.Header.Get("Referer"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(`{"status":"OK"}`))
		case "/empty":
			_, _ = w.Write([]byte("  "))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewDefaultClient(Options{
		Timeout:       time.Second,
		Headers:       map[string]string{"Referer": "https://example.org/"},
		MaxRetries:    2,
		RetryInterval: time.Millisecond,
	})
	ctx := context.Background()

	body, err := client.Get(ctx, srv.URL+"/ok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"OK"}`, string(body))

	_, err = client.Get(ctx, srv.URL+"/empty")
	assert.ErrorIs(t, err, ErrEmptyBody)

	before := calls.Load()
	_, err = client.Get(ctx, srv.URL+"/missing")
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, before+1, calls.Load(), "4xx must not be retried")

	before = calls.Load()
	_, err = client.Get(ctx, srv.URL+"/flaky")
	require.Error(t, err)
	assert.Equal(t, before+3, calls.Load(), "5xx is retried max_retries times")
}

func TestHTTPError_Temporary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want bool
	}{
		{code: http.StatusNotFound, want: false},
		{code: http.StatusForbidden, want: false},
		{code: http.StatusTooManyRequests, want: true},
		{code: http.StatusServiceUnavailable, want: true},
	}
	for _, tt := range tests {
		err := &HTTPError{StatusCode: tt.code}
		assert.Equal(t, tt.want, err.Temporary(), tt.code)
	}
}
