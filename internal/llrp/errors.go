//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"fmt"

	"github.com/pkg/errors"
)

// The engine distinguishes three error classes, and callers can rely on them
// never being conflated:
//
//   - CodecError: the byte stream violated the LLRP framing or parameter
//     schema. The stream is desynchronized, so these are fatal to the
//     connection that produced them.
//   - StatusError: the Reader processed a request and returned a non-success
//     LLRPStatus. The connection remains usable.
//   - transport errors: wrapped net errors plus the sentinels below,
//     surfaced through the connection lifecycle.
var (
	// ErrClientClosed is returned by operations attempted after the Client
	// shut down, and delivered to waiters pending at teardown.
	ErrClientClosed = errors.New("client closed")

	// ErrConnectionLost indicates the keepalive watchdog expired
	// or the transport failed underneath an established session.
	ErrConnectionLost = errors.New("connection lost")
)

// CodecErrorKind identifies what the codec tripped on.
type CodecErrorKind uint8

const (
	ErrTruncated = CodecErrorKind(iota + 1)
	ErrBadLength
	ErrUnknownTVType
	ErrUnexpectedParameter
	ErrMissingParameter
	ErrTrailingBytes
	ErrFieldOverflow
)

func (k CodecErrorKind) String() string {
	switch k {
	case ErrTruncated:
		return "truncated buffer"
	case ErrBadLength:
		return "malformed length"
	case ErrUnknownTVType:
		return "unknown TV type"
	case ErrUnexpectedParameter:
		return "unexpected parameter"
	case ErrMissingParameter:
		return "missing parameter"
	case ErrTrailingBytes:
		return "trailing bytes"
	case ErrFieldOverflow:
		return "field overflow"
	default:
		return fmt.Sprintf("codec error %d", k)
	}
}

// CodecError reports a wire-level encoding or decoding failure.
type CodecError struct {
	Kind CodecErrorKind
	msg  string
}

func codecErrf(kind CodecErrorKind, format string, args ...interface{}) *CodecError {
	return &CodecError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *CodecError) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.msg
}

// IsCodecError reports whether err is (or wraps) a CodecError.
func IsCodecError(err error) bool {
	var ce *CodecError
	return errors.As(err, &ce)
}

// StatusError wraps a non-success LLRPStatus returned by the Reader.
// These are recoverable: the request was understood and rejected,
// and the connection remains usable.
type StatusError struct {
	LLRPStatus
	// Message is the response type that carried the status.
	Message MessageType
}

func (e *StatusError) Error() string {
	if e.ErrorDescription != "" {
		return fmt.Sprintf("%v from %v: %s", e.Status, e.Message, e.ErrorDescription)
	}
	return fmt.Sprintf("%v from %v", e.Status, e.Message)
}

// IsStatusError returns the wrapped StatusError, if err carries one.
func IsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	ok := errors.As(err, &se)
	return se, ok
}
