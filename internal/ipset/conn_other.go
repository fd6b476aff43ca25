//go:build !linux

package ipset

// Conn is a stub on platforms without netfilter netlink.
type Conn struct{}

func Dial(opts ...ConnOption) (*Conn, error) { return nil, ErrUnsupported }

func (c *Conn) Send(msg []byte) error { return ErrUnsupported }

func (c *Conn) Close() error { return nil }
