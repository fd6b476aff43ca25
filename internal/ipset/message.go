package ipset

import (
	"net"

	"github.com/danmuck/ipsetctl/internal/netlink"
)

// checkName rejects unusable set names before anything touches a buffer
// or the socket.
func checkName(name string) error {
	if name == "" || len(name)+1 > MaxNameLen {
		return ErrNameTooLong
	}
	return nil
}

// preamble writes the command header, the family sub-header, the protocol
// attribute and the NUL-terminated set name. Every ipset command starts
// this way.
func preamble(m *netlink.Message, cmd uint16, family Family, name string) error {
	if err := m.PutHeader(cmd|SubsysIPSet<<8, netlink.MsgFlagRequest); err != nil {
		return err
	}
	if err := m.PutGenHeader(uint8(family), NFNetlinkV0, 0); err != nil {
		return err
	}
	if err := m.AppendAttr(AttrProtocol, []byte{Protocol}); err != nil {
		return err
	}
	return m.AppendAttr(AttrSetName, append([]byte(name), 0))
}

// BuildAddrMessage encodes one add or del command for an IP entry. The
// family and payload width follow the parsed address: 4 bytes for IPv4,
// 16 for IPv6, both flagged network byte order inside the nested
// DATA > IP frames.
func BuildAddrMessage(capacity int, name string, ip net.IP, remove bool) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if ip == nil {
		return nil, ErrNotAddress
	}
	cmd := CmdAdd
	if remove {
		cmd = CmdDel
	}
	family, addr, addrType := FamilyIPv4, ip.To4(), AttrIPAddrIPv4
	if addr == nil {
		family, addr, addrType = FamilyIPv6, ip.To16(), AttrIPAddrIPv6
	}

	m := netlink.NewMessage(capacity)
	if err := preamble(m, cmd, family, name); err != nil {
		return nil, err
	}
	data, err := m.BeginNested(AttrData)
	if err != nil {
		return nil, err
	}
	ipFrame, err := m.BeginNested(AttrIP)
	if err != nil {
		return nil, err
	}
	if err := m.AppendAttr(addrType|netlink.FlagNetByteorder, addr); err != nil {
		return nil, err
	}
	if err := m.EndNested(ipFrame); err != nil {
		return nil, err
	}
	if err := m.EndNested(data); err != nil {
		return nil, err
	}
	return m.Bytes()
}

// BuildMACMessage encodes an add command for a hardware-address entry.
// The ether attribute is flat, and the kernel side only supports adds for
// this variant.
func BuildMACMessage(capacity int, name string, mac net.HardwareAddr) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if len(mac) != 6 {
		return nil, ErrNotAddress
	}
	m := netlink.NewMessage(capacity)
	if err := preamble(m, CmdAdd, FamilyIPv4, name); err != nil {
		return nil, err
	}
	if err := m.AppendAttr(AttrEther, mac); err != nil {
		return nil, err
	}
	return m.Bytes()
}

// BuildFlushMessage encodes a flush command for the named set. The family
// byte is always the IPv4 selector regardless of what the set holds; the
// kernel flushes by name and tolerates the value.
func BuildFlushMessage(capacity int, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	m := netlink.NewMessage(capacity)
	if err := preamble(m, CmdFlush, FamilyIPv4, name); err != nil {
		return nil, err
	}
	return m.Bytes()
}
