package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/sankaku/apierr"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
		WithRetryWait(time.Millisecond, 5*time.Millisecond),
		WithLogger(zerolog.Nop()),
	}, opts...)

	c, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		assert.Equal(t, "order:popularity", r.URL.Query().Get("tags"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1}})
	}))
	defer server.Close()

	c := newTestClient(t)
	params := url.Values{"lang": {"en"}, "tags": {"order:popularity"}}
	header := http.Header{"Authorization": {"Bearer abc"}}

	resp, err := c.Get(context.Background(), server.URL+"/posts", params, header)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.OK)
	assert.JSONEq(t, `[{"id":1}]`, string(resp.JSON))
}

func TestPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"login":"user","password":"pass"}`, string(body))
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "code": "invalid_login"})
	}))
	defer server.Close()

	c := newTestClient(t)
	resp, err := c.Post(context.Background(), server.URL, map[string]string{"login": "user", "password": "pass"}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.False(t, resp.OK)
}

func TestNonJSONContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	c := newTestClient(t)
	_, err := c.Get(context.Background(), server.URL, nil, nil)
	require.Error(t, err)

	var se *apierr.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusOK, se.Status)
	assert.Contains(t, se.Message, "text/html")
}

func TestInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"broken":`))
	}))
	defer server.Close()

	c := newTestClient(t)
	_, err := c.Get(context.Background(), server.URL, nil, nil)

	var se *apierr.ServerError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, "invalid JSON")
}

func TestRetries(t *testing.T) {
	t.Run("retries transient failures", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{})
				return
			}
			writeJSON(w, http.StatusOK, []int{})
		}))
		defer server.Close()

		c := newTestClient(t, WithRetries(3))
		resp, err := c.Get(context.Background(), server.URL, nil, nil)
		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("surfaces the last response after exhausting retries", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusBadGateway, map[string]any{})
		}))
		defer server.Close()

		c := newTestClient(t, WithRetries(2))
		resp, err := c.Get(context.Background(), server.URL, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.Status)
		assert.False(t, resp.OK)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusNotFound, map[string]any{"code": "not_found"})
		}))
		defer server.Close()

		c := newTestClient(t, WithRetries(3))
		resp, err := c.Get(context.Background(), server.URL, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "https://example.com", r.Header.Get("Referer"))
		assert.Equal(t, "override", r.Header.Get("X-Requested-With"))
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer server.Close()

	c := newTestClient(t,
		WithUserAgent("custom-agent"),
		WithHeaders(http.Header{"Referer": {"https://example.com"}}),
	)
	_, err := c.Get(context.Background(), server.URL, nil, http.Header{"X-Requested-With": {"override"}})
	require.NoError(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newTestClient(t)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestSocksProxyFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantErr bool
	}{
		{name: "no proxy", env: map[string]string{}},
		{name: "http proxy is not socks", env: map[string]string{"HTTPS_PROXY": "http://proxy:8080"}},
		{name: "all_proxy socks", env: map[string]string{"ALL_PROXY": "socks5://127.0.0.1:1080"}, want: "socks5://127.0.0.1:1080"},
		{name: "lowercase", env: map[string]string{"https_proxy": "socks5h://proxy:1080"}, want: "socks5h://proxy:1080"},
		{
			name: "first set variable wins",
			env:  map[string]string{"ALL_PROXY": "http://proxy:8080", "HTTP_PROXY": "socks5://proxy:1080"},
		},
		{name: "invalid url", env: map[string]string{"ALL_PROXY": "socks5://[::1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := socksProxyFromEnv(func(k string) string { return tt.env[k] })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, u)
				return
			}
			require.NotNil(t, u)
			assert.Equal(t, tt.want, u.String())
		})
	}
}
