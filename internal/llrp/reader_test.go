//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeReader speaks the Reader side of an LLRP session over a net.Conn.
//
// It announces a ConnectionAttemptEvent, then answers each inbound message
// using the respond function. A CloseConnection ends the session after its
// response is written, matching real Reader behavior.
type fakeReader struct {
	conn net.Conn
	done chan struct{}
}

func startFakeReader(conn net.Conn, greeting ConnectionAttemptEvent, respond func(Message) []Outgoing) *fakeReader {
	f := &fakeReader{conn: conn, done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer conn.Close()

		ev := greeting
		f.announce(ReaderEventNotification{
			ReaderEventNotificationData: ReaderEventNotificationData{
				ConnectionAttemptEvent: &ev,
			},
		})

		if respond == nil {
			return
		}
		for {
			m, err := readMessageFrom(conn)
			if err != nil {
				return
			}
			for _, out := range respond(m) {
				f.reply(m, out)
			}
			if m.typ == MsgCloseConnection {
				return
			}
		}
	}()
	return f
}

func (f *fakeReader) announce(ren ReaderEventNotification) {
	m, err := NewMessage(&ren)
	if err != nil {
		return
	}
	m.version = Version1_1
	f.write(m)
}

func (f *fakeReader) reply(to Message, out Outgoing) {
	m, err := NewMessage(out)
	if err != nil {
		return
	}
	m.id = to.id
	m.version = to.version
	f.write(m)
}

func (f *fakeReader) write(m Message) {
	data, err := m.MarshalBinary()
	if err != nil {
		return
	}
	_, _ = f.conn.Write(data)
}

// standardResponses answers the handshake and simple commands successfully.
func standardResponses(m Message) []Outgoing {
	switch m.typ {
	case MsgGetSupportedVersion:
		return []Outgoing{&GetSupportedVersionResponse{
			CurrentVersion:      Version1_1,
			MaxSupportedVersion: Version1_1,
			LLRPStatus:          successStatus(),
		}}
	case MsgSetProtocolVersion:
		return []Outgoing{&SetProtocolVersionResponse{LLRPStatus: successStatus()}}
	case MsgCloseConnection:
		return []Outgoing{&CloseConnectionResponse{LLRPStatus: successStatus()}}
	case MsgGetROSpecs:
		return []Outgoing{&GetROSpecsResponse{LLRPStatus: successStatus()}}
	case MsgStartROSpec:
		return []Outgoing{&StartROSpecResponse{LLRPStatus: successStatus()}}
	case MsgDeleteROSpec:
		return []Outgoing{&DeleteROSpecResponse{LLRPStatus: successStatus()}}
	}
	return nil
}

// startTestClient wires a Client to a fakeReader over a pipe.
// The returned channel yields Connect's result once the session ends.
func startTestClient(t *testing.T, respond func(Message) []Outgoing, opts ...ClientOpt) (*Client, *fakeReader, chan error) {
	t.Helper()

	cConn, rConn := net.Pipe()
	f := startFakeReader(rConn, ConnSuccess, respond)
	c := NewClient(append([]ClientOpt{WithTimeout(5 * time.Second)}, opts...)...)

	connErr := make(chan error, 1)
	go func() { connErr <- c.Connect(cConn) }()
	return c, f, connErr
}

func waitSession(t *testing.T, connErr chan error, f *fakeReader) error {
	t.Helper()

	var err error
	select {
	case err = <-connErr:
	case <-time.After(5 * time.Second):
		t.Fatal("Connect did not return")
	}

	select {
	case <-f.done:
	case <-time.After(5 * time.Second):
		t.Fatal("fake reader did not stop")
	}
	return err
}

func TestClientExchangeAndShutdown(t *testing.T) {
	c, f, connErr := startTestClient(t, standardResponses)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp := GetROSpecsResponse{}
	require.NoError(t, c.SendFor(ctx, &GetROSpecs{}, &resp))
	assert.Equal(t, StatusSuccess, resp.LLRPStatus.Status)
	assert.Equal(t, Version1_1, c.Version())

	require.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, waitSession(t, connErr, f))
}

func TestClientNegotiatesLegacyVersion(t *testing.T) {
	// A v1.0.1 Reader doesn't know GetSupportedVersion and answers
	// with an ErrorMessage; the Client must settle on 1.0.1.
	respond := func(m Message) []Outgoing {
		if m.typ == MsgGetSupportedVersion {
			return []Outgoing{&ErrorMessage{LLRPStatus: LLRPStatus{
				Status: StatusMsgVerUnsupported,
			}}}
		}
		return standardResponses(m)
	}

	c, f, connErr := startTestClient(t, respond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.SendFor(ctx, &GetROSpecs{}, nil))
	assert.Equal(t, Version1_0_1, c.Version())

	require.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, waitSession(t, connErr, f))
}

func TestClientSkipsNegotiationForV1_0_1(t *testing.T) {
	respond := func(m Message) []Outgoing {
		if m.typ == MsgGetSupportedVersion {
			return []Outgoing{&ErrorMessage{LLRPStatus: LLRPStatus{
				Status:           StatusMsgUnsupported,
				ErrorDescription: "should not have been sent",
			}}}
		}
		return standardResponses(m)
	}

	c, f, connErr := startTestClient(t, respond, WithVersion(Version1_0_1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.SendFor(ctx, &GetROSpecs{}, nil))
	assert.Equal(t, Version1_0_1, c.Version())

	require.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, waitSession(t, connErr, f))
}

func TestClientRejectsRefusedConnection(t *testing.T) {
	cConn, rConn := net.Pipe()
	f := startFakeReader(rConn, ConnFailedClientInitiatedAlreadyExists, nil)
	c := NewClient(WithTimeout(5 * time.Second))

	connErr := make(chan error, 1)
	go func() { connErr <- c.Connect(cConn) }()

	err := waitSession(t, connErr, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestClientStatusErrorKeepsSessionAlive(t *testing.T) {
	respond := func(m Message) []Outgoing {
		if m.typ == MsgAddROSpec {
			return []Outgoing{&AddROSpecResponse{LLRPStatus: LLRPStatus{
				Status:           StatusMsgParamError,
				ErrorDescription: "bad ROSpec",
			}}}
		}
		return standardResponses(m)
	}

	c, f, connErr := startTestClient(t, respond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.SendFor(ctx, &AddROSpec{}, &AddROSpecResponse{})
	require.Error(t, err)
	se, ok := IsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, StatusMsgParamError, se.Status)
	assert.Equal(t, MsgAddROSpecResponse, se.Message)

	// The Reader rejected one request; the connection is still good.
	require.NoError(t, c.SendFor(ctx, &GetROSpecs{}, nil))

	require.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, waitSession(t, connErr, f))
}

func TestClientErrorMessageReply(t *testing.T) {
	respond := func(m Message) []Outgoing {
		if m.typ == MsgGetROSpecs {
			return []Outgoing{&ErrorMessage{LLRPStatus: LLRPStatus{
				Status: StatusMsgUnsupported,
			}}}
		}
		return standardResponses(m)
	}

	c, f, connErr := startTestClient(t, respond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.SendFor(ctx, &GetROSpecs{}, &GetROSpecsResponse{})
	require.Error(t, err)
	se, ok := IsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, StatusMsgUnsupported, se.Status)

	require.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, waitSession(t, connErr, f))
}

func TestClientAcksKeepAlives(t *testing.T) {
	gotKA := make(chan struct{})
	c, f, connErr := startTestClient(t, standardResponses,
		WithMessageHandler(MsgKeepAlive, MessageHandlerFunc(func(_ *Client, _ Message) {
			close(gotKA)
		})))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.SendFor(ctx, &GetROSpecs{}, nil))

	ka := NewByteMessage(MsgKeepAlive, nil)
	ka.id = 0x1234
	ka.version = Version1_1
	f.write(ka)

	select {
	case <-gotKA:
	case <-time.After(5 * time.Second):
		t.Fatal("keepalive never reached the handler")
	}

	// The ack is read by the fake reader's serve loop (standardResponses
	// ignores it); a follow-up exchange proves the stream stayed in sync.
	require.NoError(t, c.SendFor(ctx, &GetROSpecs{}, nil))

	require.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, waitSession(t, connErr, f))
}

func TestClientWatchdogFailsPendingSends(t *testing.T) {
	// Answer the handshake, then go silent: no keepalives, no responses.
	respond := func(m Message) []Outgoing {
		switch m.typ {
		case MsgGetSupportedVersion, MsgSetProtocolVersion:
			return standardResponses(m)
		}
		return nil
	}

	c, f, connErr := startTestClient(t, respond,
		WithKeepAliveWatchdog(100*time.Millisecond))
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.SendFor(ctx, &GetROSpecs{}, &GetROSpecsResponse{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionLost),
		"pending send should fail with the session's terminal error, got %v", err)

	err = waitSession(t, connErr, f)
	assert.True(t, errors.Is(err, ErrConnectionLost), "got %v", err)
}

func TestClientCloseFailsLaterSends(t *testing.T) {
	c, f, connErr := startTestClient(t, standardResponses)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.SendFor(ctx, &GetROSpecs{}, nil))

	require.NoError(t, c.Close())
	assert.NoError(t, waitSession(t, connErr, f))

	err := c.SendFor(ctx, &GetROSpecs{}, nil)
	assert.True(t, errors.Is(err, ErrClientClosed), "got %v", err)
}

func TestClientPoolRoundTrip(t *testing.T) {
	c, f, connErr := startTestClient(t, standardResponses)

	pool := NewClientPool(WithCommandTimeout(5 * time.Second))
	pool.Set("speedway", c)

	require.NoError(t, pool.StartROSpec("speedway", 1))
	require.NoError(t, pool.DeleteAllROSpecs("speedway"))
	assert.ElementsMatch(t, []string{"speedway"}, pool.Names())

	pool.Remove("speedway")
	err := pool.StartROSpec("speedway", 1)
	assert.True(t, errors.Is(err, ErrUnknownReader), "got %v", err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Shutdown(ctx))
	assert.NoError(t, waitSession(t, connErr, f))
}
