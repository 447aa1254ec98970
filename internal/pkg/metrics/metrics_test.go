package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/api/services", 200, time.Millisecond)
		m.BookingCreated()
		m.SlotConflict()
		m.BlogPostViewed()
	})
}

func TestCounters(t *testing.T) {
	m := New()
	m.BookingCreated()
	m.BookingCreated()
	m.SlotConflict()
	m.ObserveRequest(http.MethodPost, "/api/bookings", 201, 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.slotConflicts))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/bookings", "201")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ReviewSubmitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "salon_reviews_submitted_total 1"))
}
