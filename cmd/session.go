//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/config"
	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
)

// llrpPort is the port IANA registered for LLRP.
const llrpPort = "5084"

// inventoryROSpecID is the id a ReaderGroup assigns to the ROSpec it
// installs when a reader joins it.
const inventoryROSpecID = 1

// session wires one Client to one Reader and registers it in a
// ClientPool so the SpecController helpers can drive it by name.
type session struct {
	cfg     config.Config
	name    string
	client  *llrp.Client
	pool    *llrp.ClientPool
	connErr chan error
}

// readerName is the host part of the address, used as the pool key.
func readerName(address string) string {
	host, _, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return address
	}
	return host
}

// withDefaultPort appends LLRP's registered port when none is given.
func withDefaultPort(address string) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(address, llrpPort)
}

// dial connects to the Reader at address and starts the LLRP session.
// The returned session must be released with close.
func dial(cfg config.Config, address string, opts ...llrp.ClientOpt) (*session, error) {
	address = withDefaultPort(address)
	conn, err := net.DialTimeout("tcp", address, cfg.Reader.ConnectTimeout())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %q", address)
	}

	clientOpts := []llrp.ClientOpt{
		llrp.WithLogger(log.Logger),
		llrp.WithTimeout(cfg.Reader.CommandTimeout()),
	}
	if cfg.Reader.KeepAliveIntervalSeconds > 0 {
		clientOpts = append(clientOpts,
			llrp.WithKeepAliveWatchdog(cfg.Reader.WatchdogWindow()))
	}
	clientOpts = append(clientOpts, opts...)

	s := &session{
		cfg:    cfg,
		name:   readerName(address),
		client: llrp.NewClient(clientOpts...),
		pool: llrp.NewClientPool(
			llrp.WithPoolLogger(log.Logger),
			llrp.WithCommandTimeout(cfg.Reader.CommandTimeout())),
		connErr: make(chan error, 1),
	}
	s.pool.Set(s.name, s.client)

	go func() { s.connErr <- s.client.Connect(conn) }()

	log.Info().Str("reader", s.name).Str("address", address).Msg("dialed reader")
	return s, nil
}

// send issues a single request under the configured command timeout.
func (s *session) send(out llrp.Outgoing, in llrp.Incoming) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Reader.CommandTimeout())
	defer cancel()
	return s.client.SendFor(ctx, out, in)
}

// configure pushes the keepalive and report settings onto the Reader,
// first resetting it so leftovers from earlier sessions can't linger.
func (s *session) configure() error {
	conf := &llrp.SetReaderConfig{
		ResetToFactoryDefaults: true,
		ROReportSpec:           reportSpec(s.cfg.Report),
	}
	if s.cfg.Reader.KeepAliveIntervalSeconds > 0 {
		conf.KeepAliveSpec = &llrp.KeepAliveSpec{
			Trigger:  llrp.KATriggerPeriodic,
			Interval: llrp.Millisecs32(s.cfg.Reader.KeepAliveIntervalSeconds * 1000),
		}
	}
	return s.pool.SetConfig(s.name, conf)
}

func reportSpec(rc config.ReportConfig) *llrp.ROReportSpec {
	return &llrp.ROReportSpec{
		Trigger: llrp.ROReportTriggerNTagsOrAIEnd,
		N:       rc.TagsPerReport,
		TagReportContentSelector: llrp.TagReportContentSelector{
			EnableAntennaID:          rc.IncludeAntennaID,
			EnableChannelIndex:       rc.IncludeChannelIndex,
			EnablePeakRSSI:           rc.IncludePeakRSSI,
			EnableFirstSeenTimestamp: rc.IncludeFirstSeen,
			EnableLastSeenTimestamp:  rc.IncludeLastSeen,
			EnableTagSeenCount:       rc.IncludeTagSeenCount,
		},
	}
}

// close attempts a graceful LLRP goodbye before dropping the TCP side,
// then waits for the connection goroutine to finish.
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Reader.CommandTimeout())
	defer cancel()

	if err := s.client.Shutdown(ctx); err != nil && !errors.Is(err, llrp.ErrClientClosed) {
		log.Warn().Err(err).Msg("graceful shutdown failed; closing connection")
		_ = s.client.Close()
	}

	if err := <-s.connErr; err != nil &&
		!errors.Is(err, llrp.ErrClientClosed) && !errors.Is(err, llrp.ErrConnectionLost) {
		log.Debug().Err(err).Msg("connection ended")
	}
}

// awaitSignal blocks until SIGINT/SIGTERM, or for d if d is positive.
func awaitSignal(d time.Duration) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		}
		return
	}

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
}
