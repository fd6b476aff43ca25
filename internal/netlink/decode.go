package netlink

import "encoding/binary"

// Attr is one decoded attribute with its flag bits split off the type.
type Attr struct {
	Type  uint16 // flag bits stripped
	Flags uint16 // NLA_F_NESTED / NLA_F_NET_BYTEORDER bits
	Data  []byte
}

// Nested reports whether the attribute payload is itself a sequence of
// attributes.
func (a Attr) Nested() bool { return a.Flags&FlagNested != 0 }

// NetByteorder reports whether the payload is a big-endian integer value.
func (a Attr) NetByteorder() bool { return a.Flags&FlagNetByteorder != 0 }

// ParseAttrs walks one level of attributes in b. Nested payloads are left
// raw; pass Attr.Data back in to descend.
func ParseAttrs(b []byte) ([]Attr, error) {
	var attrs []Attr
	for len(b) > 0 {
		if len(b) < AttrHdrLen {
			return nil, ErrTruncated
		}
		raw := int(binary.NativeEndian.Uint16(b[0:2]))
		typ := binary.NativeEndian.Uint16(b[2:4])
		if raw < AttrHdrLen || raw > len(b) {
			return nil, ErrTruncated
		}
		data := make([]byte, raw-AttrHdrLen)
		copy(data, b[AttrHdrLen:raw])
		attrs = append(attrs, Attr{
			Type:  typ & TypeMask,
			Flags: typ &^ TypeMask,
			Data:  data,
		})
		adv := Align(raw)
		if adv > len(b) {
			adv = len(b)
		}
		b = b[adv:]
	}
	return attrs, nil
}

// ParsedMessage is a built command split back into its parts.
type ParsedMessage struct {
	TotalLen uint32
	MsgType  uint16
	MsgFlags uint16
	Family   uint8
	Version  uint8
	ResID    uint16
	Attrs    []Attr
}

// ParseMessage decodes the nlmsghdr, the nfgenmsg, and the top level
// attribute sequence of a built command.
func ParseMessage(b []byte) (ParsedMessage, error) {
	if len(b) < MsgHdrLen+GenHdrLen {
		return ParsedMessage{}, ErrTruncated
	}
	p := ParsedMessage{
		TotalLen: binary.NativeEndian.Uint32(b[0:4]),
		MsgType:  binary.NativeEndian.Uint16(b[4:6]),
		MsgFlags: binary.NativeEndian.Uint16(b[6:8]),
		Family:   b[MsgHdrLen],
		Version:  b[MsgHdrLen+1],
		ResID:    binary.BigEndian.Uint16(b[MsgHdrLen+2 : MsgHdrLen+4]),
	}
	if int(p.TotalLen) != len(b) {
		return ParsedMessage{}, ErrTruncated
	}
	attrs, err := ParseAttrs(b[MsgHdrLen+Align(GenHdrLen):])
	if err != nil {
		return ParsedMessage{}, err
	}
	p.Attrs = attrs
	return p, nil
}

// FindAttr returns the first attribute with the given type.
func FindAttr(attrs []Attr, typ uint16) (Attr, bool) {
	for _, a := range attrs {
		if a.Type == typ {
			return a, true
		}
	}
	return Attr{}, false
}
