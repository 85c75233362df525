package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRouter_Routes(t *testing.T) {
	m := NewTestMetrics()
	srv := httptest.NewServer(NewStatusRouter(m, &stubChecker{}))
	defer srv.Close()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	m := NewTestMetrics()
	srv := httptest.NewServer(NewStatusRouter(m, &stubChecker{}))
	defer srv.Close()

	for range 3 {
		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		resp.Body.Close()
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200"))
	assert.InDelta(t, 3, count, 0.001)
}
