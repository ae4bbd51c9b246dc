package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/rendezvous/pkg/idx"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("nonsense"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.Same(t, slog.Default(), slogx.FromContext(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen *slog.Logger
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = slogx.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

		require.NotNil(t, seen)
		require.NotSame(t, logger, seen)
		_, err := idx.Parse(rec.Header().Get(slogx.RequestIDHeader))
		require.NoError(t, err)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "http_request", line["msg"])
		require.EqualValues(t, http.StatusTeapot, line["status"])
		require.Equal(t, rec.Header().Get(slogx.RequestIDHeader), line["req_id"])
	})

	t.Run("keeps valid inbound id", func(t *testing.T) {
		want := idx.New().String()
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set(slogx.RequestIDHeader, want)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, want, rec.Header().Get(slogx.RequestIDHeader))
	})

	t.Run("replaces garbage inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set(slogx.RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.NotEqual(t, "<script>", rec.Header().Get(slogx.RequestIDHeader))
		_, err := idx.Parse(rec.Header().Get(slogx.RequestIDHeader))
		require.NoError(t, err)
	})
}
