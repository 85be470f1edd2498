//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/taglog"
)

var (
	inventoryDuration time.Duration
	inventoryDB       string

	inventoryCmd = &cobra.Command{
		Use:   "inventory <reader>",
		Short: "Run an inventory, printing tags as they're seen",
		Args:  cobra.ExactArgs(1),
		RunE:  runInventory,
	}
)

func init() {
	inventoryCmd.Flags().DurationVar(&inventoryDuration, "duration", 0,
		"How long to read; 0 runs until interrupted")
	inventoryCmd.Flags().StringVar(&inventoryDB, "db", "",
		"SQLite file to record sightings in (overrides config)")
}

func runInventory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if inventoryDB != "" {
		cfg.Database.Path = inventoryDB
	}

	var sink *taglog.Log
	if cfg.Database.Path != "" {
		sink, err = taglog.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer sink.Close()
	}

	group := llrp.NewReaderGroup()
	name := readerName(withDefaultPort(args[0]))

	reports := llrp.MessageHandlerFunc(func(_ *llrp.Client, msg llrp.Message) {
		var report llrp.ROAccessReport
		if err := msg.UnmarshalTo(&report); err != nil {
			log.Error().Err(err).Msg("failed to decode tag report")
			return
		}
		handleTags(group, sink, name, report.TagReportData)
	})

	s, err := dial(cfg, args[0], llrp.WithMessageHandler(llrp.MsgROAccessReport, reports))
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
	if err := group.StartAll(s.pool); err != nil {
		return err
	}
	log.Info().Msg("inventory running; press Ctrl+C to stop")

	awaitSignal(inventoryDuration)

	if err := group.StopAll(s.pool); err != nil {
		log.Warn().Err(err).Msg("failed to stop inventory")
	}
	if err := s.pool.DeleteAllROSpecs(s.name); err != nil {
		log.Warn().Err(err).Msg("failed to delete ROSpecs")
	}

	if sink != nil {
		logSinkSummary(sink)
	}
	return nil
}

// handleTags logs each sighting, lets the device normalize the report,
// and persists it if a sink is open.
func handleTags(group *llrp.ReaderGroup, sink *taglog.Log, name string, tags []llrp.TagReportData) {
	group.ProcessTagReport(name, tags)

	for i := range tags {
		ev := log.Info().Str("epc", hex.EncodeToString(tags[i].EPC()))
		if tags[i].AntennaID != nil {
			ev = ev.Uint16("antenna", uint16(*tags[i].AntennaID))
		}
		if rssi, ok := tags[i].ExtractRSSI(); ok {
			ev = ev.Float64("rssi", rssi)
		}
		if tags[i].TagSeenCount != nil {
			ev = ev.Uint16("count", uint16(*tags[i].TagSeenCount))
		}
		ev.Msg("tag")
	}

	if sink != nil {
		if err := sink.Record(context.Background(), name, tags); err != nil {
			log.Error().Err(err).Msg("failed to record tags")
		}
	}
}

func logSinkSummary(sink *taglog.Log) {
	ctx := context.Background()
	total, err := sink.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to count recorded tags")
		return
	}
	epcs, err := sink.UniqueEPCs(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to count unique EPCs")
		return
	}
	log.Info().Int64("sightings", total).Int("uniqueEPCs", len(epcs)).Msg("recorded")
}
