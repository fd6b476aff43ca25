package netlink

import "encoding/binary"

// Fixed header sizes on the wire.
const (
	MsgHdrLen  = 16 // nlmsghdr: len u32, type u16, flags u16, seq u32, pid u32
	GenHdrLen  = 4  // nfgenmsg: family u8, version u8, res_id u16
	AttrHdrLen = 4  // nlattr: len u16, type u16
)

// nlmsghdr flag bits used for one-way commands.
const MsgFlagRequest uint16 = 1 // NLM_F_REQUEST

// Attribute type flag bits.
const (
	FlagNested       uint16 = 1 << 15 // NLA_F_NESTED
	FlagNetByteorder uint16 = 1 << 14 // NLA_F_NET_BYTEORDER
	TypeMask         uint16 = ^(FlagNested | FlagNetByteorder)
)

// DefaultCapacity bounds a single outbound command message.
const DefaultCapacity = 256

// Align rounds n up to the next 4-byte boundary.
func Align(n int) int { return (n + 3) &^ 3 }

// Message assembles one outbound netlink command into a fixed-capacity
// buffer. The nlmsghdr length field is kept current as content is
// appended, so the buffer is transmittable the moment the last frame
// closes. Appends fail with ErrBufferFull rather than overrunning.
type Message struct {
	buf    []byte
	n      int   // logical length, always 4-byte aligned
	nested []int // start offsets of open nested frames, innermost last
}

// NestedFrame identifies an open nested attribute awaiting its length.
type NestedFrame struct {
	start int
}

// NewMessage allocates an empty message. A non-positive capacity selects
// DefaultCapacity.
func NewMessage(capacity int) *Message {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Message{buf: make([]byte, capacity)}
}

// Len returns the logical message length in bytes.
func (m *Message) Len() int { return m.n }

// Bytes returns the encoded message. It fails while nested frames remain
// open, since their length fields are still zero.
func (m *Message) Bytes() ([]byte, error) {
	if len(m.nested) != 0 {
		return nil, ErrNestedOpen
	}
	return m.buf[:m.n], nil
}

// grow reserves n more bytes and returns the reserved window. The logical
// length never shrinks, so the window is guaranteed zeroed.
func (m *Message) grow(n int) ([]byte, error) {
	if m.n+n > len(m.buf) {
		return nil, ErrBufferFull
	}
	b := m.buf[m.n : m.n+n]
	m.n += n
	return b, nil
}

// patchLen refreshes the nlmsghdr total-length field.
func (m *Message) patchLen() {
	binary.NativeEndian.PutUint32(m.buf[0:4], uint32(m.n))
}

// PutHeader writes the nlmsghdr. It must be the first write into the
// message; sequence and port id stay zero for fire-and-forget commands.
func (m *Message) PutHeader(msgType, msgFlags uint16) error {
	if m.n != 0 {
		return ErrHeaderMisplaced
	}
	b, err := m.grow(Align(MsgHdrLen))
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint16(b[4:6], msgType)
	binary.NativeEndian.PutUint16(b[6:8], msgFlags)
	m.patchLen()
	return nil
}

// PutGenHeader writes the nfgenmsg sub-header. The resource id is the one
// field the protocol defines as network byte order.
func (m *Message) PutGenHeader(family, version uint8, resID uint16) error {
	if m.n < MsgHdrLen {
		return ErrHeaderMisplaced
	}
	b, err := m.grow(Align(GenHdrLen))
	if err != nil {
		return err
	}
	b[0] = family
	b[1] = version
	binary.BigEndian.PutUint16(b[2:4], resID)
	m.patchLen()
	return nil
}

// AppendAttr writes one attribute: header, payload copied verbatim, zero
// padding to the 4-byte boundary. The recorded nla_len is the unpadded
// header+payload length; the buffer advances by the aligned total.
func (m *Message) AppendAttr(typ uint16, payload []byte) error {
	if m.n < MsgHdrLen {
		return ErrHeaderMisplaced
	}
	raw := AttrHdrLen + len(payload)
	if raw > int(^uint16(0)) {
		return ErrPayloadTooLarge
	}
	b, err := m.grow(Align(raw))
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint16(b[0:2], uint16(raw))
	binary.NativeEndian.PutUint16(b[2:4], typ)
	copy(b[AttrHdrLen:], payload)
	m.patchLen()
	return nil
}

// BeginNested reserves an attribute header with NLA_F_NESTED set and a
// zero length, and records the frame on the open stack. The length is
// written by EndNested once the contained attributes exist.
func (m *Message) BeginNested(typ uint16) (NestedFrame, error) {
	if m.n < MsgHdrLen {
		return NestedFrame{}, ErrHeaderMisplaced
	}
	start := m.n
	b, err := m.grow(AttrHdrLen)
	if err != nil {
		return NestedFrame{}, err
	}
	binary.NativeEndian.PutUint16(b[2:4], typ|FlagNested)
	m.nested = append(m.nested, start)
	m.patchLen()
	return NestedFrame{start: start}, nil
}

// EndNested closes a nested frame, patching its length to the span from
// the frame's start offset to the current logical end. Frames must close
// innermost first; closing out of order corrupts sibling lengths, so the
// stack is checked rather than trusted.
func (m *Message) EndNested(f NestedFrame) error {
	if len(m.nested) == 0 {
		return ErrNoOpenNested
	}
	if m.nested[len(m.nested)-1] != f.start {
		return ErrNestedOrder
	}
	span := m.n - f.start
	if span > int(^uint16(0)) {
		return ErrPayloadTooLarge
	}
	m.nested = m.nested[:len(m.nested)-1]
	binary.NativeEndian.PutUint16(m.buf[f.start:f.start+2], uint16(span))
	return nil
}
