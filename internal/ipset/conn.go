//go:build linux

package ipset

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/danmuck/ipsetctl/internal/observability"
)

// Conn owns the netfilter control socket. Commands are one-way datagrams;
// nothing is ever read back, so the socket never sees a receive call.
type Conn struct {
	mu  sync.Mutex
	fd  int
	sa  *unix.SockaddrNetlink
	cfg connConfig
}

// Dial opens and binds the netlink netfilter socket. Nothing issued
// through this package works until this succeeds.
func Dial(opts ...ConnOption) (*Conn, error) {
	cfg := defaultConnConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW, unix.NETLINK_NETFILTER)
	if err != nil {
		return nil, fmt.Errorf("ipset: netlink socket: %w", err)
	}
	sa := &unix.SockaddrNetlink{Family: unix.AF_NETLINK}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ipset: netlink bind: %w", err)
	}
	return &Conn{fd: fd, sa: sa, cfg: cfg}, nil
}

// Send transmits one built command, riding out transient backpressure
// with a full retry budget per call. The mutex serializes concurrent
// callers over the shared descriptor.
func (c *Conn) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := sendRetry(func() error {
		return unix.Sendto(c.fd, msg, 0, c.sa)
	}, c.cfg.retryLimit, c.cfg.retryInterval, observability.RecordSendRetry)
	if err != nil {
		return fmt.Errorf("ipset: send: %w", err)
	}
	return nil
}

// Close releases the socket.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fd < 0 {
		return nil
	}
	err := unix.Close(c.fd)
	c.fd = -1
	return err
}
