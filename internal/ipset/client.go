package ipset

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"

	"github.com/danmuck/ipsetctl/internal/netlink"
	"github.com/danmuck/ipsetctl/internal/observability"
)

// Sender delivers one encoded command to the kernel.
type Sender interface {
	Send(msg []byte) error
}

// Client issues membership commands against named kernel sets through a
// Sender. It holds no socket state of its own; the Sender does.
type Client struct {
	sender   Sender
	capacity int
	log      zerolog.Logger
}

// ClientOption adjusts a Client at construction.
type ClientOption func(*Client)

// WithLogger attaches a logger for per-command debug events.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// WithCapacity overrides the command buffer capacity.
func WithCapacity(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// NewClient wraps a Sender, typically a *Conn.
func NewClient(sender Sender, opts ...ClientOption) *Client {
	c := &Client{
		sender:   sender,
		capacity: netlink.DefaultCapacity,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply adds or removes one entry in the named set. The value is
// classified as an IP address first, then as a 48-bit MAC address;
// anything else is rejected before the socket is touched. MAC entries
// only support add: a remove request for a MAC still issues an add,
// matching the kernel-side command set for ether attributes.
func (c *Client) Apply(name, value string, remove bool) error {
	op := "add"
	if remove {
		op = "del"
	}

	var msg []byte
	var err error
	if ip := net.ParseIP(value); ip != nil {
		msg, err = BuildAddrMessage(c.capacity, name, ip, remove)
	} else if mac, macErr := net.ParseMAC(value); macErr == nil && len(mac) == 6 {
		op = "add"
		msg, err = BuildMACMessage(c.capacity, name, mac)
	} else {
		err = fmt.Errorf("%w: %q", ErrNotAddress, value)
	}
	if err != nil {
		observability.RecordCommand(name, op, "rejected")
		return err
	}
	return c.send(name, value, op, msg)
}

// Flush removes every entry from the named set.
func (c *Client) Flush(name string) error {
	msg, err := BuildFlushMessage(c.capacity, name)
	if err != nil {
		observability.RecordCommand(name, "flush", "rejected")
		return err
	}
	return c.send(name, "", "flush", msg)
}

func (c *Client) send(name, value, op string, msg []byte) error {
	if err := c.sender.Send(msg); err != nil {
		c.log.Debug().Str("set", name).Str("value", value).Str("op", op).
			Err(err).Msg("ipset command failed")
		observability.RecordCommand(name, op, "error")
		return err
	}
	c.log.Debug().Str("set", name).Str("value", value).Str("op", op).
		Int("bytes", len(msg)).Msg("ipset command sent")
	observability.RecordCommand(name, op, "ok")
	return nil
}
