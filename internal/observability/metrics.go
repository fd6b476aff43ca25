package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ipsetctl",
			Subsystem: "netlink",
			Name:      "commands_total",
			Help:      "Total ipset commands issued, by set, operation and outcome.",
		},
		[]string{"set", "op", "outcome"},
	)
	sendRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ipsetctl",
			Subsystem: "netlink",
			Name:      "send_retries_total",
			Help:      "Sends retried after transient kernel backpressure.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(commands, sendRetries)
	})
}

// RecordCommand counts one dispatched command. Outcome is one of ok,
// error, rejected.
func RecordCommand(set, op, outcome string) {
	RegisterMetrics()
	commands.WithLabelValues(set, op, outcome).Inc()
}

// RecordSendRetry counts one transient-backpressure retry.
func RecordSendRetry() {
	RegisterMetrics()
	sendRetries.Inc()
}
