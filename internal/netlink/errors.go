package netlink

import "errors"

var (
	ErrBufferFull      = errors.New("netlink: message buffer full")
	ErrHeaderMisplaced = errors.New("netlink: message header must be written first")
	ErrPayloadTooLarge = errors.New("netlink: attribute payload too large")
	ErrNoOpenNested    = errors.New("netlink: no open nested attribute")
	ErrNestedOrder     = errors.New("netlink: nested attributes must close innermost first")
	ErrNestedOpen      = errors.New("netlink: nested attribute left open")
	ErrTruncated       = errors.New("netlink: truncated attribute data")
)
