//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	// HeaderSz is the size of an LLRP message header:
	// 6 bits reserved+version, 10 bits type, 32-bit length, 32-bit id.
	HeaderSz = 10

	// maxPayloadSz caps how much a single message may ask us to buffer.
	// LLRP allows 32-bit lengths, but a Reader demanding gigabytes is
	// either broken or hostile.
	maxPayloadSz = 16 << 20
)

type messageID uint32

// Header is the fixed prefix of every LLRP message.
type Header struct {
	payloadLen uint32
	id         messageID
	typ        MessageType
	version    VersionNum
}

func (h Header) Version() VersionNum { return h.version }
func (h Header) Type() MessageType   { return h.typ }

func (h Header) String() string {
	return fmt.Sprintf("%v (v%d, id %d, %d byte payload)", h.typ, h.version, h.id, h.payloadLen)
}

func (h Header) encodeTo(buf []byte) {
	binary.BigEndian.PutUint16(buf[0:2], uint16(h.version&0x7)<<10|uint16(h.typ)&0x3FF)
	binary.BigEndian.PutUint32(buf[2:6], h.payloadLen+HeaderSz)
	binary.BigEndian.PutUint32(buf[6:10], uint32(h.id))
}

// decodeHeader validates and unpacks a 10-byte header buffer.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSz {
		return Header{}, codecErrf(ErrTruncated, "header needs %d bytes, have %d", HeaderSz, len(buf))
	}
	first := binary.BigEndian.Uint16(buf[0:2])
	length := binary.BigEndian.Uint32(buf[2:6])
	if length < HeaderSz {
		return Header{}, codecErrf(ErrBadLength, "message declares length %d < header size", length)
	}
	if length-HeaderSz > maxPayloadSz {
		return Header{}, codecErrf(ErrBadLength, "message declares %d byte payload, over the %d limit",
			length-HeaderSz, maxPayloadSz)
	}
	return Header{
		payloadLen: length - HeaderSz,
		id:         messageID(binary.BigEndian.Uint32(buf[6:10])),
		typ:        MessageType(first & 0x3FF),
		version:    VersionNum(first >> 10 & 0x7),
	}, nil
}

// Message is a framed LLRP message: a header plus an undecoded body.
//
// Messages with types this package doesn't recognize stay in this form,
// preserving the id for response correlation and the body byte-exact.
type Message struct {
	Header
	payload []byte
}

// NewByteMessage wraps an already-encoded body.
func NewByteMessage(typ MessageType, payload []byte) Message {
	return Message{
		Header:  Header{typ: typ, payloadLen: uint32(len(payload)), version: VersionMin},
		payload: payload,
	}
}

// NewMessage marshals an Outgoing message body.
func NewMessage(out Outgoing) (Message, error) {
	data, err := out.MarshalBinary()
	if err != nil {
		return Message{}, errors.WithMessagef(err, "failed to encode %v", out.Type())
	}
	return NewByteMessage(out.Type(), data), nil
}

// Payload returns the raw message body.
func (m Message) Payload() []byte { return m.payload }

// MarshalBinary frames the message: header plus body.
func (m Message) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSz+len(m.payload))
	m.Header.encodeTo(buf)
	copy(buf[HeaderSz:], m.payload)
	return buf, nil
}

// UnmarshalTo decodes the message body into a typed message.
// If the target declares a type, it must match the header's.
func (m Message) UnmarshalTo(in encoding.BinaryUnmarshaler) error {
	if t, ok := in.(interface{ Type() MessageType }); ok && t.Type() != m.typ {
		return codecErrf(ErrUnexpectedParameter, "message is %v, not %v", m.typ, t.Type())
	}
	return in.UnmarshalBinary(m.payload)
}

// readMessageFrom reads exactly one framed message off r, blocking until the
// transport delivers it. Partial frames are reassembled by io.ReadFull
// regardless of how the stream fragments them.
func readMessageFrom(r io.Reader) (Message, error) {
	var hbuf [HeaderSz]byte
	if _, err := io.ReadFull(r, hbuf[:]); err != nil {
		return Message{}, err
	}

	hdr, err := decodeHeader(hbuf[:])
	if err != nil {
		return Message{}, err
	}

	payload := make([]byte, hdr.payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Message{}, errors.Wrapf(err, "short read of %v body", hdr.typ)
	}

	return Message{Header: hdr, payload: payload}, nil
}
