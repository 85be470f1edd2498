//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"encoding/binary"
	"math"
)

// msgBuilder accumulates a message or parameter payload.
//
// Errors are sticky: after the first failure, writes become no-ops
// and finish returns the error.
// TLV lengths are always recomputed from the bytes actually serialized
// (see tlv), so an encoded parameter's length field can never disagree
// with its payload.
type msgBuilder struct {
	data []byte
	err  error
}

func newMsgBuilder() *msgBuilder {
	return &msgBuilder{data: make([]byte, 0, 256)}
}

func (b *msgBuilder) finish() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.data, nil
}

func (b *msgBuilder) u8(v uint8) {
	if b.err != nil {
		return
	}
	b.data = append(b.data, v)
}

func (b *msgBuilder) u16(v uint16) {
	if b.err != nil {
		return
	}
	b.data = append(b.data, byte(v>>8), byte(v))
}

func (b *msgBuilder) u32(v uint32) {
	if b.err != nil {
		return
	}
	b.data = append(b.data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (b *msgBuilder) u64(v uint64) {
	if b.err != nil {
		return
	}
	b.data = append(b.data,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (b *msgBuilder) raw(p []byte) {
	if b.err != nil {
		return
	}
	b.data = append(b.data, p...)
}

// bool1 writes a single boolean as the high bit of one byte,
// the common LLRP packing for lone flags.
func (b *msgBuilder) bool1(v bool) {
	var x uint8
	if v {
		x = 0x80
	}
	b.u8(x)
}

// str writes a UTF-8 string prefixed with its 16-bit byte count.
func (b *msgBuilder) str(s string) {
	if b.err != nil {
		return
	}
	if len(s) > math.MaxUint16 {
		b.err = codecErrf(ErrFieldOverflow, "string of %d bytes exceeds field", len(s))
		return
	}
	b.u16(uint16(len(s)))
	b.data = append(b.data, s...)
}

// tlv writes a TLV parameter: 6 reserved bits, 10-bit type, 16-bit total
// length covering the 4-byte header plus whatever body appends.
// The length is backpatched after body runs.
func (b *msgBuilder) tlv(t ParamType, body func()) {
	if b.err != nil {
		return
	}
	start := len(b.data)
	b.u16(uint16(t) & 0x3FF)
	b.u16(0)
	body()
	if b.err != nil {
		return
	}
	length := len(b.data) - start
	if length > math.MaxUint16 {
		b.err = codecErrf(ErrFieldOverflow, "parameter %v of %d bytes exceeds TLV length field", t, length)
		return
	}
	binary.BigEndian.PutUint16(b.data[start+2:], uint16(length))
}

// tv writes a TV parameter header: high bit set, 7-bit type.
// The caller appends the fixed-size value immediately after.
func (b *msgBuilder) tv(t ParamType) {
	b.u8(0x80 | uint8(t&0x7F))
}
