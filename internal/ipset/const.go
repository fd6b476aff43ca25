package ipset

import "time"

// Wire constants from linux/netfilter/nfnetlink.h and
// linux/netfilter/ipset/ip_set.h. Spelled out here so the package builds
// against any header vintage; the kernel negotiates nothing beyond the
// protocol attribute.
const (
	SubsysIPSet uint16 = 6 // NFNL_SUBSYS_IPSET
	Protocol    uint8  = 6 // IPSET_PROTOCOL
	NFNetlinkV0 uint8  = 0 // nfgenmsg version

	CmdFlush uint16 = 4  // IPSET_CMD_FLUSH
	CmdAdd   uint16 = 9  // IPSET_CMD_ADD
	CmdDel   uint16 = 10 // IPSET_CMD_DEL

	AttrProtocol uint16 = 1  // IPSET_ATTR_PROTOCOL
	AttrSetName  uint16 = 2  // IPSET_ATTR_SETNAME
	AttrTimeout  uint16 = 6  // IPSET_ATTR_TIMEOUT
	AttrData     uint16 = 7  // IPSET_ATTR_DATA, nested
	AttrIP       uint16 = 1  // IPSET_ATTR_IP within DATA, nested
	AttrEther    uint16 = 17 // IPSET_ATTR_ETHER

	AttrIPAddrIPv4 uint16 = 1 // IPSET_ATTR_IPADDR_IPV4 within IP
	AttrIPAddrIPv6 uint16 = 2 // IPSET_ATTR_IPADDR_IPV6 within IP

	// MaxNameLen bounds a set name including its terminating NUL.
	MaxNameLen = 32
)

// Family selects the address family byte of the nfgenmsg (linux AF_INET /
// AF_INET6 values).
type Family uint8

const (
	FamilyIPv4 Family = 2
	FamilyIPv6 Family = 10
)

// Transient send retry policy. The netfilter receive queue can reject
// sends momentarily under load; a short sleep between bounded retries
// rides that out without busy-looping forever.
const (
	DefaultRetryLimit    = 1000
	DefaultRetryInterval = 10 * time.Microsecond
)
