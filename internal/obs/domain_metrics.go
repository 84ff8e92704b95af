package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics groups Prometheus collectors for the selling floor.
type POSMetrics struct {
	OrdersTotal     *prometheus.CounterVec
	OrderValue      prometheus.Histogram
	DrawerMovements *prometheus.CounterVec
	ShiftsOpen      prometheus.Gauge
}

// NewPOSMetrics registers and returns the domain collectors.
func NewPOSMetrics(namespace string, reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &POSMetrics{
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Completed orders by payment method.",
		}, []string{"method"}),
		OrderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_value_minor_units",
			Help:      "Order totals in minor currency units.",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 8),
		}),
		DrawerMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drawer_movements_total",
			Help:      "Cash drawer movements by direction.",
		}, []string{"direction"}),
		ShiftsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drawer_shifts_open",
			Help:      "Currently open drawer shifts.",
		}),
	}
	for _, c := range []prometheus.Collector{m.OrdersTotal, m.OrderValue, m.DrawerMovements, m.ShiftsOpen} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
	return m
}

// ObserveOrder records a completed order.
func (m *POSMetrics) ObserveOrder(method string, total int64) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(method).Inc()
	m.OrderValue.Observe(float64(total))
}
