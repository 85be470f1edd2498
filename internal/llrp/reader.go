//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Package llrp speaks the Low Level Reader Protocol: binary message
// framing, the TLV/TV parameter codec, a Client for driving LLRP
// Readers over TCP, and device models that turn high-level Behaviors
// into the ROSpecs a particular Reader can run.
package llrp

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MessageHandler processes a Reader-initiated message:
// reports, event notifications, or anything else the Client
// wasn't awaiting as a response.
//
// Handlers run on the Client's read goroutine, so a handler that blocks
// stalls all message processing for that Client. Handlers needing to
// send messages or do slow work should do so on their own goroutine.
type MessageHandler interface {
	HandleMessage(c *Client, msg Message)
}

// MessageHandlerFunc adapts a function to the MessageHandler interface.
type MessageHandlerFunc func(c *Client, msg Message)

func (f MessageHandlerFunc) HandleMessage(c *Client, msg Message) { f(c, msg) }

const (
	// defaultSendTimeout bounds single message writes, not full exchanges;
	// use the context passed to SendFor to bound an exchange.
	defaultSendTimeout = 10 * time.Second
)

// Client speaks LLRP over a single Reader connection.
//
// Use NewClient with options, then Connect with a live net.Conn;
// Connect blocks servicing the connection until it ends.
// Other goroutines may use SendFor to run request-response exchanges,
// and Shutdown/Close to end the session.
type Client struct {
	log        zerolog.Logger
	timeout    time.Duration
	target     VersionNum
	kaWindow   time.Duration
	handlers   map[MessageType]MessageHandler
	defHandler MessageHandler

	conn    net.Conn
	version VersionNum

	sendMu sync.Mutex // serializes writes to conn

	mu       sync.Mutex
	awaiting map[messageID]chan Message
	nextID   messageID
	reason   error
	closing  bool

	ready  chan struct{} // closed once the session is usable
	done   chan struct{} // closed at teardown
	kaSeen chan struct{}
}

// ClientOpt modifies a Client at construction time.
type ClientOpt func(*Client)

// WithLogger sets the Client's logger; the default discards everything.
func WithLogger(log zerolog.Logger) ClientOpt {
	return func(c *Client) { c.log = log }
}

// WithTimeout bounds each message write. Zero disables the bound.
func WithTimeout(d time.Duration) ClientOpt {
	return func(c *Client) { c.timeout = d }
}

// WithVersion caps the protocol version the Client negotiates.
// Version1_0_1 skips negotiation entirely, since v1.0.1 predates
// the GetSupportedVersion message.
func WithVersion(v VersionNum) ClientOpt {
	return func(c *Client) { c.target = v }
}

// WithKeepAliveWatchdog declares the connection lost if no KeepAlive
// arrives within window. The caller must separately configure the Reader
// to send KeepAlives (SetReaderConfig with a KeepAliveSpec) at a period
// comfortably shorter than window. Zero disables the watchdog.
func WithKeepAliveWatchdog(window time.Duration) ClientOpt {
	return func(c *Client) { c.kaWindow = window }
}

// WithMessageHandler routes Reader-initiated messages of type mt to h.
// Awaited responses never reach handlers.
func WithMessageHandler(mt MessageType, h MessageHandler) ClientOpt {
	return func(c *Client) { c.handlers[mt] = h }
}

// WithDefaultHandler routes Reader-initiated messages
// with no specific handler to h.
func WithDefaultHandler(h MessageHandler) ClientOpt {
	return func(c *Client) { c.defHandler = h }
}

func NewClient(opts ...ClientOpt) *Client {
	c := &Client{
		log:      zerolog.Nop(),
		timeout:  defaultSendTimeout,
		target:   VersionMax,
		handlers: map[MessageType]MessageHandler{},
		awaiting: map[messageID]chan Message{},
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
		kaSeen:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Version returns the protocol version in use.
// Before negotiation completes, it's the configured target.
func (c *Client) Version() VersionNum {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version == versionUnknown {
		return c.target
	}
	return c.version
}

// Connect takes ownership of conn and services it:
// it validates the Reader's connection event, negotiates a version,
// then dispatches messages until the session ends.
//
// It returns nil after a clean Shutdown or Close, and otherwise
// the error that ended the session. Once Connect returns,
// the Client cannot be reused.
func (c *Client) Connect(conn net.Conn) error {
	if conn == nil {
		return errors.New("nil connection")
	}
	c.conn = conn
	defer conn.Close()

	if err := c.establish(); err != nil {
		c.fail(err)
		return err
	}

	c.log.Info().
		Stringer("version", c.version).
		Str("reader", conn.RemoteAddr().String()).
		Msg("LLRP session established")
	close(c.ready)

	if c.kaWindow > 0 {
		go c.watchdog()
	}

	err := c.readLoop()
	c.fail(err)

	if errors.Is(c.err(), ErrClientClosed) {
		return nil
	}
	return c.err()
}

// err returns the reason the session ended.
func (c *Client) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reason == nil {
		return ErrClientClosed
	}
	return c.reason
}

// fail tears the session down: it records the first reason,
// closes done, fails all pending waiters, and closes the transport.
func (c *Client) fail(reason error) {
	c.mu.Lock()
	if c.reason != nil {
		c.mu.Unlock()
		return
	}
	if reason == nil {
		reason = ErrClientClosed
	}
	c.reason = reason
	waiters := c.awaiting
	c.awaiting = nil
	close(c.done)
	c.mu.Unlock()

	// Closed channels tell waiters to pick up c.err().
	for _, w := range waiters {
		close(w)
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

// Close ends the session immediately, without the CloseConnection handshake.
func (c *Client) Close() error {
	c.fail(ErrClientClosed)
	return nil
}

// Shutdown performs the CloseConnection handshake, then closes the Client.
// If the Reader doesn't confirm before ctx expires, the session is torn
// down anyway and the ctx error returned.
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.closing = true
	c.mu.Unlock()

	err := c.SendFor(ctx, &CloseConnection{}, &CloseConnectionResponse{})
	c.fail(ErrClientClosed)
	if err != nil && !errors.Is(err, ErrClientClosed) {
		return errors.WithMessage(err, "graceful close failed")
	}
	return nil
}

// SendFor sends out and decodes the Reader's answer into in.
//
// If the Reader answers with an ErrorMessage, or the response carries a
// non-success LLRPStatus, the returned error wraps a *StatusError and
// the connection remains usable. If the session ends first, it returns
// the session's terminal error (e.g. ErrConnectionLost, ErrClientClosed).
//
// in may be nil to discard the response body.
func (c *Client) SendFor(ctx context.Context, out Outgoing, in Incoming) error {
	select {
	case <-c.ready:
	case <-c.done:
		return c.err()
	case <-ctx.Done():
		return ctx.Err()
	}

	m, err := NewMessage(out)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, m)
	if err != nil {
		return err
	}

	if resp.typ == MsgErrorMessage && out.Type() != MsgErrorMessage {
		em := &ErrorMessage{}
		if err := resp.UnmarshalTo(em); err != nil {
			return err
		}
		return errors.WithMessagef(em.LLRPStatus.Err(resp.typ),
			"reader rejected %v", out.Type())
	}

	if expected, ok := out.Type().responseType(); ok && resp.typ != expected {
		return codecErrf(ErrUnexpectedParameter,
			"expected %v in reply to %v, got %v", expected, out.Type(), resp.typ)
	}

	if in == nil {
		return nil
	}
	if err := resp.UnmarshalTo(in); err != nil {
		return err
	}
	if s, ok := in.(Statusable); ok {
		return s.Status().Err(resp.typ)
	}
	return nil
}

// send writes m with a fresh message id and waits for the matching reply.
func (c *Client) send(ctx context.Context, m Message) (Message, error) {
	w := make(chan Message, 1)

	c.mu.Lock()
	if c.awaiting == nil {
		reason := c.reason
		c.mu.Unlock()
		return Message{}, reason
	}
	c.nextID++
	m.id = c.nextID
	c.awaiting[m.id] = w
	c.mu.Unlock()

	abandon := func() {
		c.mu.Lock()
		delete(c.awaiting, m.id)
		c.mu.Unlock()
	}

	m.version = c.version
	if err := c.writeMessage(m); err != nil {
		abandon()
		return Message{}, err
	}

	select {
	case resp, ok := <-w:
		if !ok {
			return Message{}, c.err()
		}
		return resp, nil
	case <-c.done:
		return Message{}, c.err()
	case <-ctx.Done():
		abandon()
		return Message{}, ctx.Err()
	}
}

func (c *Client) writeMessage(m Message) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.timeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return errors.Wrap(err, "failed to set write deadline")
		}
	}
	c.log.Debug().Stringer("type", m.typ).Uint32("id", uint32(m.id)).Msg("sending")
	_, err = c.conn.Write(data)
	return errors.Wrapf(err, "failed to write %v", m.typ)
}

// establish consumes the Reader's connection attempt event
// and negotiates the protocol version.
//
// Until it returns, the Client owns the read side exclusively,
// so it reads synchronously; stray keepalives are acked inline.
func (c *Client) establish() error {
	m, err := c.readDuringSetup()
	if err != nil {
		return errors.WithMessage(err, "no connection event from reader")
	}

	ren := &ReaderEventNotification{}
	if err := m.UnmarshalTo(ren); err != nil {
		return errors.WithMessagef(err, "expected %v", MsgReaderEventNotification)
	}
	if !ren.IsConnectSuccess() {
		ev := ren.ReaderEventNotificationData.ConnectionAttemptEvent
		if ev == nil {
			return errors.New("connection event missing from reader notification")
		}
		return errors.Errorf("reader refused connection: %v", *ev)
	}

	c.version = c.target
	if c.target == Version1_0_1 {
		return nil
	}
	return c.negotiate()
}

// negotiate settles on the highest version both sides speak.
// v1.0.1 Readers answer GetSupportedVersion with an ErrorMessage,
// which simply means v1.0.1.
func (c *Client) negotiate() error {
	resp, err := c.exchangeDuringSetup(&GetSupportedVersion{})
	if err != nil {
		return err
	}

	if resp.typ == MsgErrorMessage {
		c.version = Version1_0_1
		c.log.Debug().Msg("reader predates version negotiation; using 1.0.1")
		return nil
	}

	sv := &GetSupportedVersionResponse{}
	if err := resp.UnmarshalTo(sv); err != nil {
		return err
	}
	if err := sv.LLRPStatus.Err(resp.typ); err != nil {
		return err
	}

	v := c.target
	if sv.MaxSupportedVersion < v {
		v = sv.MaxSupportedVersion
	}
	if v < VersionMin {
		return errors.Errorf("reader supports at most %v; need at least %v",
			sv.MaxSupportedVersion, VersionMin)
	}
	c.version = v

	if sv.CurrentVersion == v {
		return nil
	}

	resp, err = c.exchangeDuringSetup(&SetProtocolVersion{TargetVersion: v})
	if err != nil {
		return err
	}
	spv := &SetProtocolVersionResponse{}
	if err := resp.UnmarshalTo(spv); err != nil {
		return err
	}
	return spv.LLRPStatus.Err(resp.typ)
}

func (c *Client) exchangeDuringSetup(out Outgoing) (Message, error) {
	m, err := NewMessage(out)
	if err != nil {
		return Message{}, err
	}

	c.mu.Lock()
	c.nextID++
	m.id = c.nextID
	c.mu.Unlock()

	m.version = c.version
	if err := c.writeMessage(m); err != nil {
		return Message{}, err
	}

	for {
		resp, err := c.readDuringSetup()
		if err != nil {
			return Message{}, err
		}
		if resp.id == m.id {
			return resp, nil
		}
		// Not ours; the only legitimate talkers this early are keepalives.
		if resp.typ == MsgKeepAlive {
			c.ackKeepAlive(resp)
		}
	}
}

func (c *Client) readDuringSetup() (Message, error) {
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return Message{}, errors.Wrap(err, "failed to set read deadline")
		}
	}
	return readMessageFrom(c.conn)
}

// readLoop dispatches inbound messages until the transport fails.
func (c *Client) readLoop() error {
	// Steady-state reads block indefinitely; liveness is the
	// keepalive watchdog's job.
	if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
		return errors.Wrap(err, "failed to clear read deadline")
	}

	for {
		m, err := readMessageFrom(c.conn)
		if err != nil {
			c.mu.Lock()
			closing := c.closing
			c.mu.Unlock()
			select {
			case <-c.done:
				return nil
			default:
			}
			if closing {
				// The Reader hangs up after CloseConnectionResponse.
				return nil
			}
			return errors.Wrap(ErrConnectionLost, err.Error())
		}
		c.dispatch(m)
	}
}

func (c *Client) dispatch(m Message) {
	c.log.Debug().Stringer("type", m.typ).Uint32("id", uint32(m.id)).Msg("received")

	if m.typ == MsgKeepAlive {
		select {
		case c.kaSeen <- struct{}{}:
		default:
		}
		c.ackKeepAlive(m)
		c.handle(m)
		return
	}

	c.mu.Lock()
	w, waited := c.awaiting[m.id]
	if waited {
		delete(c.awaiting, m.id)
	}
	c.mu.Unlock()

	if waited {
		w <- m
		return
	}
	c.handle(m)
}

func (c *Client) handle(m Message) {
	h, ok := c.handlers[m.typ]
	if !ok {
		h = c.defHandler
	}
	if h != nil {
		h.HandleMessage(c, m)
	}
}

// ackKeepAlive answers a KeepAlive; per the protocol,
// the ack echoes the KeepAlive's message id.
func (c *Client) ackKeepAlive(ka Message) {
	ack := NewByteMessage(MsgKeepAliveAck, nil)
	ack.id = ka.id
	ack.version = c.version
	if err := c.writeMessage(ack); err != nil {
		c.log.Warn().Err(err).Msg("failed to ack keepalive")
	}
}

// watchdog declares the connection lost when keepalives stop arriving.
func (c *Client) watchdog() {
	t := time.NewTimer(c.kaWindow)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-c.kaSeen:
			if !t.Stop() {
				<-t.C
			}
			t.Reset(c.kaWindow)
		case <-t.C:
			c.log.Warn().
				Dur("window", c.kaWindow).
				Msg("no keepalive within watchdog window")
			c.fail(ErrConnectionLost)
			return
		}
	}
}
