//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/monitor"
)

var (
	monitorListen string

	monitorCmd = &cobra.Command{
		Use:   "monitor <reader>",
		Short: "Run an inventory and serve a read-only HTTP view of it",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonitor,
	}
)

func init() {
	monitorCmd.Flags().StringVar(&monitorListen, "listen", "",
		"HTTP listen address (overrides config)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if monitorListen != "" {
		cfg.Monitor.Listen = monitorListen
	}

	group := llrp.NewReaderGroup()
	registry := llrp.NewSpecRegistry()
	mon := monitor.New(group, registry,
		monitor.WithLogger(log.Logger),
		monitor.WithRecentTags(cfg.Monitor.RecentTags))

	name := readerName(withDefaultPort(args[0]))

	reports := llrp.MessageHandlerFunc(func(_ *llrp.Client, msg llrp.Message) {
		var report llrp.ROAccessReport
		if err := msg.UnmarshalTo(&report); err != nil {
			log.Error().Err(err).Msg("failed to decode tag report")
			return
		}
		group.ProcessTagReport(name, report.TagReportData)
		mon.ProcessTagReport(report.TagReportData)
	})

	// Mirror reader-driven ROSpec transitions into the registry so the
	// HTTP view tracks trigger starts, stops, and preemptions.
	events := llrp.MessageHandlerFunc(func(_ *llrp.Client, msg llrp.Message) {
		var ren llrp.ReaderEventNotification
		if err := msg.UnmarshalTo(&ren); err != nil {
			log.Error().Err(err).Msg("failed to decode event notification")
			return
		}
		if ev := ren.ReaderEventNotificationData.ROSpecEvent; ev != nil {
			registry.ApplyROSpecEvent(*ev)
		}
	})

	s, err := dial(cfg, args[0],
		llrp.WithMessageHandler(llrp.MsgROAccessReport, reports),
		llrp.WithMessageHandler(llrp.MsgReaderEventNotification, events))
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.configure(); err != nil {
		return err
	}
	if err := group.AddReader(s.pool, s.name); err != nil {
		return err
	}

	// Seed the registry with the specs now on the Reader; they arrive
	// Disabled, which is the only state AddROSpec accepts.
	var specs llrp.GetROSpecsResponse
	if err := s.send(&llrp.GetROSpecs{}, &specs); err != nil {
		return errors.WithMessage(err, "failed to list ROSpecs")
	}
	for i := range specs.ROSpecs {
		if err := registry.AddROSpec(specs.ROSpecs[i]); err != nil {
			log.Warn().Err(err).Uint32("roSpec", specs.ROSpecs[i].ROSpecID).
				Msg("failed to mirror ROSpec")
		}
	}

	if err := group.StartAll(s.pool); err != nil {
		return err
	}
	_ = registry.EnableROSpec(0)
	if group.Behavior().StartTrigger().Trigger == llrp.ROStartTriggerNone {
		_ = registry.StartROSpec(inventoryROSpecID)
	}

	srv := &http.Server{Addr: cfg.Monitor.Listen, Handler: mon.Routes()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("monitor server failed")
		}
	}()
	log.Info().Str("listen", cfg.Monitor.Listen).Msg("monitor serving; press Ctrl+C to stop")

	awaitSignal(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to shut down monitor server")
	}

	if err := group.StopAll(s.pool); err != nil {
		log.Warn().Err(err).Msg("failed to stop inventory")
	}
	if err := s.pool.DeleteAllROSpecs(s.name); err != nil {
		log.Warn().Err(err).Msg("failed to delete ROSpecs")
	}
	return nil
}
