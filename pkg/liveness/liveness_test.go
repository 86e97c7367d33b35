package liveness

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRoute(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		code   int
	}{
		{name: "get root", method: http.MethodGet, path: "/", code: http.StatusOK},
		{name: "post root", method: http.MethodPost, path: "/", code: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, path: "/health", code: http.StatusNotFound},
	}
	router := NewRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.Equal(t, `{"status":"ok"}`, rec.Body.String())
			}
		})
	}
}

func TestServerRunsOnItsOwn(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := NewServer(listener.Addr().String())
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	rs, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	defer rs.Body.Close()
	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rs.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
