package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"nativedelight/internal/models"
)

// Shop records cart, checkout and session activity. A nil *Shop is a no-op.
type Shop struct {
	cartMutations  *prometheus.CounterVec
	ordersPlaced   *prometheus.CounterVec
	redirects      prometheus.Counter
	failures       prometheus.Counter
	activeSessions prometheus.Gauge
	requests       *prometheus.HistogramVec
}

// NewShop registers the shop metrics on the provided registerer.
func NewShop(reg prometheus.Registerer) *Shop {
	if reg == nil {
		return &Shop{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders marked placed by checkout channel.",
	}, []string{"channel"})
	redirects := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_redirects_total",
		Help: "Checkout submissions handed off to a payment redirect.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_submission_failures_total",
		Help: "Failed payment initialization attempts.",
	})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Browsing sessions currently held in memory.",
	})
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
	reg.MustRegister(cartMutations, ordersPlaced, redirects, failures, activeSessions, requests)
	return &Shop{
		cartMutations:  cartMutations,
		ordersPlaced:   ordersPlaced,
		redirects:      redirects,
		failures:       failures,
		activeSessions: activeSessions,
		requests:       requests,
	}
}

func (s *Shop) CartMutated(op string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (s *Shop) OrderPlaced(method models.PaymentMethod) {
	if s == nil || s.ordersPlaced == nil {
		return
	}
	s.ordersPlaced.WithLabelValues(normalizeLabel(string(method))).Inc()
}

func (s *Shop) PaymentRedirected() {
	if s == nil || s.redirects == nil {
		return
	}
	s.redirects.Inc()
}

func (s *Shop) SubmissionFailed() {
	if s == nil || s.failures == nil {
		return
	}
	s.failures.Inc()
}

func (s *Shop) SessionOpened() {
	if s == nil || s.activeSessions == nil {
		return
	}
	s.activeSessions.Inc()
}

func (s *Shop) SessionClosed() {
	if s == nil || s.activeSessions == nil {
		return
	}
	s.activeSessions.Dec()
}

func (s *Shop) ObserveRequest(route string, status int, duration time.Duration) {
	if s == nil || s.requests == nil {
		return
	}
	s.requests.WithLabelValues(normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
