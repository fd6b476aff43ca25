package ipset

import "errors"

var (
	ErrNameTooLong = errors.New("ipset: set name missing or too long")
	ErrNotAddress  = errors.New("ipset: value is neither an IP nor a MAC address")
	ErrUnsupported = errors.New("ipset: netlink ipset requires linux")
)
