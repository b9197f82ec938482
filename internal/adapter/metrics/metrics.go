package metrics

import (
	"net/http"
	"strconv"
	"time"

	"bitpesa-lending/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bitpesa"

// Prometheus implements ports.Metrics and records HTTP traffic.
type Prometheus struct {
	registry *prometheus.Registry

	loansCreated    prometheus.Counter
	principalIssued prometheus.Counter
	loansRepaid     prometheus.Counter
	interestPaid    prometheus.Counter
	liquidations    prometheus.Counter
	collateralSold  prometheus.Counter
	oracleFailures  *prometheus.CounterVec
	bridgeStatus    *prometheus.CounterVec
	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates the collectors on a private registry.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	m := &Prometheus{
		registry: reg,
		loansCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lending", Name: "loans_created_total",
			Help: "Loans opened.",
		}),
		principalIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lending", Name: "principal_issued_total",
			Help: "Principal paid out to borrowers, in quote smallest units.",
		}),
		loansRepaid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lending", Name: "loans_repaid_total",
			Help: "Loans closed by repayment.",
		}),
		interestPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lending", Name: "interest_paid_total",
			Help: "Interest collected on repayment, in quote smallest units.",
		}),
		liquidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lending", Name: "liquidations_total",
			Help: "Loans closed by liquidation.",
		}),
		collateralSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lending", Name: "collateral_liquidated_total",
			Help: "Collateral seized by liquidations, in collateral smallest units.",
		}),
		oracleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "oracle", Name: "failures_total",
			Help: "Price reads rejected by the oracle, by reason.",
		}, []string{"reason"}),
		bridgeStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "bridge", Name: "transitions_total",
			Help: "Bridge transfers entering each status.",
		}, []string{"status"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(
		m.loansCreated, m.principalIssued, m.loansRepaid, m.interestPaid,
		m.liquidations, m.collateralSold, m.oracleFailures, m.bridgeStatus,
		m.requests, m.latency,
	)
	return m
}

func (m *Prometheus) LoanCreated(principal uint64) {
	m.loansCreated.Inc()
	m.principalIssued.Add(float64(principal))
}

func (m *Prometheus) LoanRepaid(interest uint64) {
	m.loansRepaid.Inc()
	m.interestPaid.Add(float64(interest))
}

func (m *Prometheus) LoanLiquidated(collateral uint64) {
	m.liquidations.Inc()
	m.collateralSold.Add(float64(collateral))
}

func (m *Prometheus) OracleFailure(reason string) {
	m.oracleFailures.WithLabelValues(reason).Inc()
}

func (m *Prometheus) BridgeTransition(status domain.BridgeStatus) {
	m.bridgeStatus.WithLabelValues(string(status)).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Prometheus) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
