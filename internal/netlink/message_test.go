package netlink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestAppendAttrAlignsLengthAndPadsPayload(t *testing.T) {
	for payloadLen := 0; payloadLen <= 9; payloadLen++ {
		m := NewMessage(0)
		if err := m.PutHeader(0x0609, MsgFlagRequest); err != nil {
			t.Fatalf("put header: %v", err)
		}
		payload := bytes.Repeat([]byte{0xFF}, payloadLen)
		before := m.Len()
		if err := m.AppendAttr(3, payload); err != nil {
			t.Fatalf("append attr (payload %d): %v", payloadLen, err)
		}
		advance := m.Len() - before
		if advance%4 != 0 {
			t.Fatalf("advance %d not 4-byte aligned", advance)
		}
		if advance < AttrHdrLen+payloadLen {
			t.Fatalf("advance %d smaller than header+payload %d", advance, AttrHdrLen+payloadLen)
		}
		raw := m.buf[before : before+advance]
		if got := binary.NativeEndian.Uint16(raw[0:2]); int(got) != AttrHdrLen+payloadLen {
			t.Fatalf("nla_len = %d, want unpadded %d", got, AttrHdrLen+payloadLen)
		}
		for i := AttrHdrLen + payloadLen; i < advance; i++ {
			if raw[i] != 0 {
				t.Fatalf("padding byte %d not zero", i)
			}
		}
	}
}

func TestHeaderLengthTracksEveryAppend(t *testing.T) {
	m := NewMessage(0)
	if err := m.PutHeader(1, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	check := func(step string) {
		if got := binary.NativeEndian.Uint32(m.buf[0:4]); int(got) != m.Len() {
			t.Fatalf("%s: header length %d != logical length %d", step, got, m.Len())
		}
	}
	check("header")
	if err := m.PutGenHeader(2, 0, 0); err != nil {
		t.Fatalf("put gen header: %v", err)
	}
	check("gen header")
	if err := m.AppendAttr(1, []byte{6}); err != nil {
		t.Fatalf("append attr: %v", err)
	}
	check("attr")
	f, err := m.BeginNested(7)
	if err != nil {
		t.Fatalf("begin nested: %v", err)
	}
	check("nested open")
	if err := m.EndNested(f); err != nil {
		t.Fatalf("end nested: %v", err)
	}
	check("nested close")
}

func TestNestedBackpatchEqualsSpan(t *testing.T) {
	m := NewMessage(0)
	if err := m.PutHeader(1, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	if err := m.PutGenHeader(2, 0, 0); err != nil {
		t.Fatalf("put gen header: %v", err)
	}
	outer, err := m.BeginNested(7)
	if err != nil {
		t.Fatalf("begin outer: %v", err)
	}
	start := m.Len() - AttrHdrLen
	inner, err := m.BeginNested(1)
	if err != nil {
		t.Fatalf("begin inner: %v", err)
	}
	if err := m.AppendAttr(1|FlagNetByteorder, []byte{192, 0, 2, 1}); err != nil {
		t.Fatalf("append addr: %v", err)
	}
	if err := m.EndNested(inner); err != nil {
		t.Fatalf("end inner: %v", err)
	}
	if err := m.EndNested(outer); err != nil {
		t.Fatalf("end outer: %v", err)
	}
	got := binary.NativeEndian.Uint16(m.buf[start : start+2])
	if int(got) != m.Len()-start {
		t.Fatalf("outer length %d, want span %d", got, m.Len()-start)
	}
}

func TestEndNestedEnforcesStackOrder(t *testing.T) {
	m := NewMessage(0)
	if err := m.PutHeader(1, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	if err := m.PutGenHeader(2, 0, 0); err != nil {
		t.Fatalf("put gen header: %v", err)
	}
	outer, err := m.BeginNested(7)
	if err != nil {
		t.Fatalf("begin outer: %v", err)
	}
	if _, err := m.BeginNested(1); err != nil {
		t.Fatalf("begin inner: %v", err)
	}
	if err := m.EndNested(outer); !errors.Is(err, ErrNestedOrder) {
		t.Fatalf("expected ErrNestedOrder, got %v", err)
	}
}

func TestEndNestedWithoutOpenFrame(t *testing.T) {
	m := NewMessage(0)
	if err := m.PutHeader(1, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	if err := m.EndNested(NestedFrame{start: MsgHdrLen}); !errors.Is(err, ErrNoOpenNested) {
		t.Fatalf("expected ErrNoOpenNested, got %v", err)
	}
}

func TestBytesRefusesOpenFrame(t *testing.T) {
	m := NewMessage(0)
	if err := m.PutHeader(1, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	if _, err := m.BeginNested(7); err != nil {
		t.Fatalf("begin nested: %v", err)
	}
	if _, err := m.Bytes(); !errors.Is(err, ErrNestedOpen) {
		t.Fatalf("expected ErrNestedOpen, got %v", err)
	}
}

func TestAppendBeyondCapacityFailsExplicitly(t *testing.T) {
	m := NewMessage(MsgHdrLen + 8)
	if err := m.PutHeader(1, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	if err := m.AppendAttr(2, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("append within capacity: %v", err)
	}
	before := m.Len()
	if err := m.AppendAttr(3, []byte{1}); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("expected ErrBufferFull, got %v", err)
	}
	if m.Len() != before {
		t.Fatalf("failed append moved logical length: %d -> %d", before, m.Len())
	}
}

func TestHeaderMustComeFirst(t *testing.T) {
	m := NewMessage(0)
	if err := m.AppendAttr(1, []byte{6}); !errors.Is(err, ErrHeaderMisplaced) {
		t.Fatalf("expected ErrHeaderMisplaced for attr, got %v", err)
	}
	if err := m.PutGenHeader(2, 0, 0); !errors.Is(err, ErrHeaderMisplaced) {
		t.Fatalf("expected ErrHeaderMisplaced for gen header, got %v", err)
	}
	if err := m.PutHeader(1, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	if err := m.PutHeader(1, MsgFlagRequest); !errors.Is(err, ErrHeaderMisplaced) {
		t.Fatalf("expected ErrHeaderMisplaced for second header, got %v", err)
	}
}

func TestParseMessageRoundTrip(t *testing.T) {
	m := NewMessage(0)
	if err := m.PutHeader(0x0609, MsgFlagRequest); err != nil {
		t.Fatalf("put header: %v", err)
	}
	if err := m.PutGenHeader(2, 0, 0); err != nil {
		t.Fatalf("put gen header: %v", err)
	}
	if err := m.AppendAttr(1, []byte{6}); err != nil {
		t.Fatalf("append protocol: %v", err)
	}
	if err := m.AppendAttr(2, []byte("blocklist\x00")); err != nil {
		t.Fatalf("append name: %v", err)
	}
	outer, err := m.BeginNested(7)
	if err != nil {
		t.Fatalf("begin outer: %v", err)
	}
	inner, err := m.BeginNested(1)
	if err != nil {
		t.Fatalf("begin inner: %v", err)
	}
	if err := m.AppendAttr(1|FlagNetByteorder, []byte{192, 0, 2, 1}); err != nil {
		t.Fatalf("append addr: %v", err)
	}
	if err := m.EndNested(inner); err != nil {
		t.Fatalf("end inner: %v", err)
	}
	if err := m.EndNested(outer); err != nil {
		t.Fatalf("end outer: %v", err)
	}
	raw, err := m.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}

	p, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}
	if p.MsgType != 0x0609 || p.MsgFlags != MsgFlagRequest || p.Family != 2 {
		t.Fatalf("header mismatch: %+v", p)
	}
	name, ok := FindAttr(p.Attrs, 2)
	if !ok || !bytes.Equal(name.Data, []byte("blocklist\x00")) {
		t.Fatalf("set name not recovered: %+v", name)
	}
	data, ok := FindAttr(p.Attrs, 7)
	if !ok || !data.Nested() {
		t.Fatalf("nested data attr not recovered: %+v", data)
	}
	ipAttrs, err := ParseAttrs(data.Data)
	if err != nil {
		t.Fatalf("parse nested data: %v", err)
	}
	if len(ipAttrs) != 1 || !ipAttrs[0].Nested() {
		t.Fatalf("nested ip frame not recovered: %+v", ipAttrs)
	}
	addrAttrs, err := ParseAttrs(ipAttrs[0].Data)
	if err != nil {
		t.Fatalf("parse addr attrs: %v", err)
	}
	if len(addrAttrs) != 1 || !addrAttrs[0].NetByteorder() {
		t.Fatalf("addr attr flags not recovered: %+v", addrAttrs)
	}
	if !bytes.Equal(addrAttrs[0].Data, []byte{192, 0, 2, 1}) {
		t.Fatalf("addr payload mismatch: %v", addrAttrs[0].Data)
	}
}

func TestParseAttrsTruncatedIsDeterministic(t *testing.T) {
	if _, err := ParseAttrs([]byte{1, 2, 3}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for short header, got %v", err)
	}
	// nla_len claims 12 bytes, only 6 present
	bad := make([]byte, 6)
	binary.NativeEndian.PutUint16(bad[0:2], 12)
	binary.NativeEndian.PutUint16(bad[2:4], 2)
	if _, err := ParseAttrs(bad); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for short value, got %v", err)
	}
}
