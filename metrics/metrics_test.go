package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreIndependent(t *testing.T) {
	a := New()
	b := New()

	a.RequestsTotal.WithLabelValues("GET", "/api/videos", "200").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RequestsTotal.WithLabelValues("GET", "/api/videos", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RequestsTotal.WithLabelValues("GET", "/api/videos", "200")))
}

func TestRegistryGathersSeries(t *testing.T) {
	c := New()
	c.RequestsTotal.WithLabelValues("GET", "/api/videos", "200").Inc()
	c.RequestsTotal.WithLabelValues("GET", "/api/videos/{id}", "404").Inc()

	count, err := testutil.GatherAndCount(c.Registry(), "video_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(c.Registry(), "video_api_store_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHandler(t *testing.T) {
	c := New()
	c.RequestsTotal.WithLabelValues("PUT", "/api/videos/{id}", "201").Inc()
	c.StoreErrors.WithLabelValues("list").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `video_api_requests_total{method="PUT",route="/api/videos/{id}",status="201"} 1`)
	assert.Contains(t, string(body), `video_api_store_errors_total{operation="list"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
