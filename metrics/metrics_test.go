package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/junaidrashid-git/teazen/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()
	m.CartItemAdded(true)
	m.CartItemAdded(false)
	m.CartItemAdded(false)
	m.OrderStatusChanged(&models.Order{Status: models.OrderStatusShipping})
	m.ContentChanged("product", "created", 1, "Trà Sen")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartAdds.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartAdds.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orderStatus.WithLabelValues("shipping")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contentWrites.WithLabelValues("product", "created")))
}

func TestBeginAndHandler(t *testing.T) {
	m := New()
	done := m.Begin("GET")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done("/product/:slug/", 200, 0.01)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/product/:slug/", "200")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "teazen_http_requests_total")
}
