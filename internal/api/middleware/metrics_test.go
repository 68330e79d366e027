package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarovaK/STR-BookingService/pkg/metrics"
)

func TestMetricsMiddlewareRecordsRouteTemplate(t *testing.T) {
	m := metrics.New("test-service")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Лейбл пути - шаблон маршрута, а не конкретный URL:
	// оба запроса попадают в одну серию
	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/bookings/{bookingId}", "200")
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
}
