//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// FrameBuffer reassembles LLRP messages from arbitrarily fragmented chunks.
//
// Push appends whatever bytes the transport produced; Next returns the next
// complete message, or nil if the buffer doesn't hold one yet. A partial
// frame is never consumed: callers may Push a single byte at a time and
// still decode exactly the messages that were written.
type FrameBuffer struct {
	buf []byte
}

// Push appends raw transport bytes.
func (fb *FrameBuffer) Push(p []byte) {
	fb.buf = append(fb.buf, p...)
}

// Buffered returns how many unconsumed bytes the buffer holds.
func (fb *FrameBuffer) Buffered() int { return len(fb.buf) }

// Next slices the next complete message out of the buffer.
//
// It returns (nil, nil) when more bytes are needed. A header that cannot be
// valid (bad length or version field) returns a CodecError; at that point the
// stream is desynchronized and the connection should be abandoned.
func (fb *FrameBuffer) Next() (*Message, error) {
	if len(fb.buf) < HeaderSz {
		return nil, nil
	}

	hdr, err := decodeHeader(fb.buf)
	if err != nil {
		return nil, err
	}

	total := HeaderSz + int(hdr.payloadLen)
	if len(fb.buf) < total {
		return nil, nil
	}

	payload := make([]byte, hdr.payloadLen)
	copy(payload, fb.buf[HeaderSz:total])
	fb.buf = fb.buf[total:]

	return &Message{Header: hdr, payload: payload}, nil
}
