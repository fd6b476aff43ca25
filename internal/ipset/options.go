package ipset

import "time"

// connConfig carries the tunables shared by the per-platform Conn
// implementations.
type connConfig struct {
	retryLimit    int
	retryInterval time.Duration
}

func defaultConnConfig() connConfig {
	return connConfig{
		retryLimit:    DefaultRetryLimit,
		retryInterval: DefaultRetryInterval,
	}
}

// ConnOption adjusts the send retry policy of a Conn.
type ConnOption func(*connConfig)

// WithRetryLimit caps consecutive transient-backpressure retries for one
// send call.
func WithRetryLimit(n int) ConnOption {
	return func(c *connConfig) {
		if n > 0 {
			c.retryLimit = n
		}
	}
}

// WithRetryInterval sets the sleep between transient retries.
func WithRetryInterval(d time.Duration) ConnOption {
	return func(c *connConfig) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}
