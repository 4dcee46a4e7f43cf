package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderIntakeMetrics counts accepted and rejected order submissions.
type OrderIntakeMetrics struct {
	submissions *prometheus.CounterVec
}

func NewOrderIntakeMetrics(reg prometheus.Registerer) *OrderIntakeMetrics {
	if reg == nil {
		return &OrderIntakeMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submissions_total",
		Help: "Order submissions by outcome and rejection reason.",
	}, []string{"outcome", "reason"})
	reg.MustRegister(submissions)
	return &OrderIntakeMetrics{submissions: submissions}
}

func (m *OrderIntakeMetrics) Accepted() {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues("accepted", "").Inc()
}

// Rejected counts a refused submission; reason is a short stable token such
// as "honeypot" or "phone".
func (m *OrderIntakeMetrics) Rejected(reason string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues("rejected", normalizeLabel(reason)).Inc()
}
