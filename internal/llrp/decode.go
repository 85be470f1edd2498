//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import "encoding/binary"

const tlvHeaderSz = 4

// tvLengths maps TV parameter types to their fixed payload sizes.
// TV parameters carry no length field, so an unlisted type can't be skipped;
// decoding one is a hard failure.
var tvLengths = map[ParamType]int{
	ParamAntennaID:                 2,
	ParamFirstSeenUTC:              8,
	ParamFirstSeenUptime:           8,
	ParamLastSeenUTC:               8,
	ParamLastSeenUptime:            8,
	ParamPeakRSSI:                  1,
	ParamChannelIndex:              2,
	ParamTagSeenCount:              2,
	ParamROSpecID:                  4,
	ParamInventoryParameterSpecID:  2,
	ParamC1G2CRC:                   2,
	ParamC1G2PC:                    2,
	ParamEPC96:                     12,
	ParamSpecIndex:                 2,
	ParamClientRequestOpSpecResult: 2,
	ParamAccessSpecID:              4,
	ParamOpSpecID:                  2,
	ParamC1G2SingulationDetails:    4,
	ParamC1G2XPCW1:                 2,
	ParamC1G2XPCW2:                 2,
}

// pReader decodes parameter payloads.
//
// Like msgBuilder, errors are sticky: after a failure every read returns
// zero values, so decoders can read a full fixed layout and check once.
type pReader struct {
	data []byte
	pos  int
	err  error
}

func newPReader(data []byte) *pReader {
	return &pReader{data: data}
}

func (r *pReader) failf(kind CodecErrorKind, format string, args ...interface{}) {
	if r.err == nil {
		r.err = codecErrf(kind, format, args...)
	}
}

func (r *pReader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.pos+n > len(r.data) {
		r.failf(ErrTruncated, "need %d bytes at offset %d, have %d", n, r.pos, len(r.data)-r.pos)
		return false
	}
	return true
}

func (r *pReader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *pReader) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *pReader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *pReader) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v
}

func (r *pReader) raw(n int) []byte {
	if n < 0 || !r.need(n) {
		return nil
	}
	v := make([]byte, n)
	copy(v, r.data[r.pos:])
	r.pos += n
	return v
}

// bool1 reads a lone flag packed into the high bit of one byte.
func (r *pReader) bool1() bool {
	return r.u8()&0x80 != 0
}

// str reads a UTF-8 string prefixed with its 16-bit byte count.
func (r *pReader) str() string {
	n := int(r.u16())
	return string(r.raw(n))
}

// paramHeader describes a parameter whose header has been consumed;
// the reader is positioned at the payload start.
type paramHeader struct {
	typ ParamType
	tv  bool
	end int // absolute payload end
}

// nextParam parses the next parameter header before limit.
// It returns ok=false when the reader has reached limit or failed.
//
// TLV lengths are validated here: a declared length smaller than the header
// or extending past the container is a hard failure, never a guess.
func (r *pReader) nextParam(limit int) (paramHeader, bool) {
	if r.err != nil || r.pos >= limit {
		return paramHeader{}, false
	}

	first := r.data[r.pos]
	if first&0x80 != 0 { // TV: implicit, schema-defined length
		t := ParamType(first & 0x7F)
		n, known := tvLengths[t]
		if !known {
			r.failf(ErrUnknownTVType, "TV type %d has no known length", t)
			return paramHeader{}, false
		}
		end := r.pos + 1 + n
		if end > limit {
			r.failf(ErrTruncated, "TV parameter %v extends past container", t)
			return paramHeader{}, false
		}
		r.pos++
		return paramHeader{typ: t, tv: true, end: end}, true
	}

	if r.pos+tlvHeaderSz > limit {
		r.failf(ErrTruncated, "TLV header extends past container")
		return paramHeader{}, false
	}
	t := ParamType(binary.BigEndian.Uint16(r.data[r.pos:]) & 0x3FF)
	length := int(binary.BigEndian.Uint16(r.data[r.pos+2:]))
	if length < tlvHeaderSz {
		r.failf(ErrBadLength, "TLV parameter %v declares length %d < header size", t, length)
		return paramHeader{}, false
	}
	end := r.pos + length
	if end > limit {
		r.failf(ErrBadLength, "TLV parameter %v declares length %d past container end", t, length)
		return paramHeader{}, false
	}
	r.pos += tlvHeaderSz
	return paramHeader{typ: t, end: end}, true
}

// endParam asserts a fixed-layout parameter consumed exactly its payload.
func (r *pReader) endParam(ph paramHeader) {
	if r.err != nil {
		return
	}
	if r.pos != ph.end {
		r.failf(ErrBadLength, "parameter %v payload length mismatch: %d bytes unread", ph.typ, ph.end-r.pos)
	}
}

// unknown captures an unrecognized TLV parameter as an opaque blob.
// The explicit length makes this always safe, and re-encoding the blob
// reproduces the original bytes exactly.
func (r *pReader) unknown(ph paramHeader) UnknownParameter {
	p := UnknownParameter{ParamType: ph.typ, Data: r.raw(ph.end - r.pos)}
	return p
}

// skip discards the remainder of a parameter.
func (r *pReader) skip(ph paramHeader) {
	if r.err == nil {
		r.pos = ph.end
	}
}

// finish asserts the reader consumed its entire input.
func (r *pReader) finish() error {
	if r.err != nil {
		return r.err
	}
	if r.pos != len(r.data) {
		return codecErrf(ErrTrailingBytes, "%d bytes after last parameter", len(r.data)-r.pos)
	}
	return nil
}
