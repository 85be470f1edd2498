//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SpecController issues LLRP commands to Readers known by name.
//
// ReaderGroup drives its members through this interface
// so it never holds connections itself.
type SpecController interface {
	GetCapabilities(name string) (*GetReaderCapabilitiesResponse, error)
	SetConfig(name string, conf *SetReaderConfig) error
	EnableCustomExtensions(name string) error
	AddROSpec(name string, spec *ROSpec) error
	EnableROSpec(name string, id uint32) error
	DisableROSpec(name string, id uint32) error
	StartROSpec(name string, id uint32) error
	StopROSpec(name string, id uint32) error
	DeleteROSpec(name string, id uint32) error
	DeleteAllROSpecs(name string) error
}

// ErrUnknownReader indicates a command named a Reader
// that isn't currently registered in the pool.
var ErrUnknownReader = errors.New("no connected reader with that name")

const defaultCommandTimeout = 20 * time.Second

// ClientPool is a SpecController backed by live Client connections.
//
// Connections are registered under a name once established
// and removed when they end; commands address Readers by that name.
// The zero value is not usable; call NewClientPool.
type ClientPool struct {
	log     zerolog.Logger
	timeout time.Duration

	mu      sync.RWMutex
	clients map[string]*Client
}

// PoolOpt modifies a ClientPool at construction time.
type PoolOpt func(*ClientPool)

// WithPoolLogger sets the pool's logger.
func WithPoolLogger(log zerolog.Logger) PoolOpt {
	return func(p *ClientPool) { p.log = log }
}

// WithCommandTimeout bounds each command's full request-response exchange.
func WithCommandTimeout(d time.Duration) PoolOpt {
	return func(p *ClientPool) { p.timeout = d }
}

func NewClientPool(opts ...PoolOpt) *ClientPool {
	p := &ClientPool{
		log:     zerolog.Nop(),
		timeout: defaultCommandTimeout,
		clients: map[string]*Client{},
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Set registers a connected Client under the given name,
// replacing any previous registration with that name.
func (p *ClientPool) Set(name string, c *Client) {
	p.mu.Lock()
	p.clients[name] = c
	p.mu.Unlock()
}

// Remove drops the named Client from the pool, if present.
// It does not close the connection.
func (p *ClientPool) Remove(name string) {
	p.mu.Lock()
	delete(p.clients, name)
	p.mu.Unlock()
}

// Get returns the named Client, if registered.
func (p *ClientPool) Get(name string) (*Client, bool) {
	p.mu.RLock()
	c, ok := p.clients[name]
	p.mu.RUnlock()
	return c, ok
}

// Names returns the names of all registered Clients.
func (p *ClientPool) Names() []string {
	p.mu.RLock()
	names := make([]string, 0, len(p.clients))
	for name := range p.clients {
		names = append(names, name)
	}
	p.mu.RUnlock()
	return names
}

// send runs a single request-response exchange against the named Reader.
func (p *ClientPool) send(name string, out Outgoing, in Incoming) error {
	c, ok := p.Get(name)
	if !ok {
		return errors.Wrap(ErrUnknownReader, name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	p.log.Debug().Str("reader", name).
		Stringer("message", out.Type()).Msg("sending command")
	return c.SendFor(ctx, out, in)
}

func (p *ClientPool) GetCapabilities(name string) (*GetReaderCapabilitiesResponse, error) {
	caps := &GetReaderCapabilitiesResponse{}
	req := &GetReaderCapabilities{ReaderCapabilitiesRequestedData: ReaderCapAll}
	if err := p.send(name, req, caps); err != nil {
		return nil, errors.WithMessagef(err, "failed to get capabilities of %q", name)
	}
	return caps, nil
}

func (p *ClientPool) SetConfig(name string, conf *SetReaderConfig) error {
	return errors.WithMessagef(p.send(name, conf, &SetReaderConfigResponse{}),
		"failed to set config on %q", name)
}

// EnableCustomExtensions turns on Impinj's custom LLRP extensions,
// which a Reader requires before it accepts Impinj Custom parameters.
// The message payload is 4 reserved bytes.
func (p *ClientPool) EnableCustomExtensions(name string) error {
	req := &CustomMessage{
		VendorID:       uint32(PENImpinj),
		MessageSubtype: 21,
		Data:           []byte{0, 0, 0, 0},
	}

	return errors.WithMessagef(p.send(name, req, &CustomMessage{}),
		"failed to enable custom extensions on %q", name)
}

func (p *ClientPool) AddROSpec(name string, spec *ROSpec) error {
	return errors.WithMessagef(p.send(name, &AddROSpec{ROSpec: *spec}, &AddROSpecResponse{}),
		"failed to add ROSpec on %q", name)
}

func (p *ClientPool) EnableROSpec(name string, id uint32) error {
	return errors.WithMessagef(
		p.send(name, &EnableROSpec{ROSpecID: id}, &EnableROSpecResponse{}),
		"failed to enable ROSpec %d on %q", id, name)
}

func (p *ClientPool) DisableROSpec(name string, id uint32) error {
	return errors.WithMessagef(
		p.send(name, &DisableROSpec{ROSpecID: id}, &DisableROSpecResponse{}),
		"failed to disable ROSpec %d on %q", id, name)
}

func (p *ClientPool) StartROSpec(name string, id uint32) error {
	return errors.WithMessagef(
		p.send(name, &StartROSpec{ROSpecID: id}, &StartROSpecResponse{}),
		"failed to start ROSpec %d on %q", id, name)
}

func (p *ClientPool) StopROSpec(name string, id uint32) error {
	return errors.WithMessagef(
		p.send(name, &StopROSpec{ROSpecID: id}, &StopROSpecResponse{}),
		"failed to stop ROSpec %d on %q", id, name)
}

func (p *ClientPool) DeleteROSpec(name string, id uint32) error {
	return errors.WithMessagef(
		p.send(name, &DeleteROSpec{ROSpecID: id}, &DeleteROSpecResponse{}),
		"failed to delete ROSpec %d on %q", id, name)
}

// DeleteAllROSpecs deletes every ROSpec on the named Reader;
// LLRP reserves ID 0 to mean "all".
func (p *ClientPool) DeleteAllROSpecs(name string) error {
	return errors.WithMessagef(
		p.send(name, &DeleteROSpec{ROSpecID: 0}, &DeleteROSpecResponse{}),
		"failed to delete ROSpecs on %q", name)
}

// NewReader prepares the named Reader for inventory operations
// and returns a TagReader that can drive it.
//
// It pulls the device's capabilities to pick an implementation,
// enables vendor extensions where the device supports them,
// and applies a baseline configuration.
func NewReader(cc SpecController, device string) (TagReader, error) {
	devCap, err := cc.GetCapabilities(device)
	if err != nil {
		return nil, err
	}

	if devCap.GeneralDeviceCapabilities == nil {
		return nil, errors.Errorf("missing general capabilities for %q", device)
	}

	switch VendorPEN(devCap.GeneralDeviceCapabilities.DeviceManufacturer) {
	case PENImpinj:
		impDev, err := NewImpinjDevice(devCap)
		if err != nil {
			return nil, err
		}

		if err := cc.EnableCustomExtensions(device); err != nil {
			return nil, err
		}

		if err := cc.SetConfig(device, impDev.NewConfig()); err != nil {
			return nil, err
		}

		return impDev, nil
	default:
		basic, err := NewBasicDevice(devCap)
		if err != nil {
			return nil, err
		}

		if err := cc.SetConfig(device, basic.NewConfig()); err != nil {
			return nil, err
		}

		return basic, nil
	}
}
