//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
)

const (
	accessSpecID   = 2
	accessOpSpecID = 1
)

var (
	accessBank     uint8
	accessPointer  uint16
	accessCount    uint16
	accessData     string
	accessPassword uint32
	accessDuration time.Duration

	accessCmd = &cobra.Command{
		Use:   "access <reader>",
		Short: "Read or write tag memory during an inventory",
		Long: `Runs an inventory with an AccessSpec attached to it.
By default it reads words from tag memory; pass --data to write instead.
Results are printed per tag as they arrive in reports.`,
		Args: cobra.ExactArgs(1),
		RunE: runAccess,
	}
)

func init() {
	accessCmd.Flags().Uint8Var(&accessBank, "bank", 3,
		"memory bank (0 reserved, 1 EPC, 2 TID, 3 user)")
	accessCmd.Flags().Uint16Var(&accessPointer, "pointer", 0,
		"word offset within the bank")
	accessCmd.Flags().Uint16Var(&accessCount, "count", 4,
		"words to read")
	accessCmd.Flags().StringVar(&accessData, "data", "",
		"hex words to write instead of reading")
	accessCmd.Flags().Uint32Var(&accessPassword, "password", 0,
		"tag access password")
	accessCmd.Flags().DurationVar(&accessDuration, "duration", 10*time.Second,
		"how long to keep the inventory running")
}

// accessOp builds the operation the flags describe: a read unless
// --data was given, in which case a write of those words.
func accessOp() (llrp.OpSpec, error) {
	if accessBank > 3 {
		return nil, errors.New("bank must be 0 to 3")
	}

	if accessData == "" {
		return llrp.C1G2Read{
			OpSpecID:       accessOpSpecID,
			AccessPassword: accessPassword,
			MemoryBank:     accessBank,
			WordPointer:    accessPointer,
			WordCount:      accessCount,
		}, nil
	}

	raw, err := hex.DecodeString(accessData)
	if err != nil {
		return nil, errors.Wrap(err, "data must be hex")
	}
	if len(raw) == 0 || len(raw)%2 != 0 {
		return nil, errors.New("data must be one or more whole 16-bit words")
	}
	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[2*i:])
	}

	return llrp.C1G2Write{
		OpSpecID:       accessOpSpecID,
		AccessPassword: accessPassword,
		MemoryBank:     accessBank,
		WordPointer:    accessPointer,
		Data:           words,
	}, nil
}

func runAccess(cmd *cobra.Command, args []string) error {
	op, err := accessOp()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	group := llrp.NewReaderGroup()
	name := readerName(withDefaultPort(args[0]))

	results := llrp.MessageHandlerFunc(func(_ *llrp.Client, msg llrp.Message) {
		var report llrp.ROAccessReport
		if err := msg.UnmarshalTo(&report); err != nil {
			log.Error().Err(err).Msg("failed to decode tag report")
			return
		}
		group.ProcessTagReport(name, report.TagReportData)
		for i := range report.TagReportData {
			logAccessResult(&report.TagReportData[i])
		}
	})

	s, err := dial(cfg, args[0], llrp.WithMessageHandler(llrp.MsgROAccessReport, results))
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

	// Tie the AccessSpec to the inventory's ROSpec; the empty target
	// pattern matches every singulated tag.
	spec := llrp.AccessSpec{
		AccessSpecID: accessSpecID,
		ROSpecID:     inventoryROSpecID,
		Trigger:      llrp.AccessSpecStopTrigger{Trigger: llrp.AccessSpecStopTriggerNone},
		AccessCommand: llrp.AccessCommand{
			TagSpec: llrp.C1G2TagSpec{
				TagPattern1: llrp.C1G2TargetTag{MemoryBank: 1, Match: true},
			},
			OpSpecs: []llrp.OpSpec{op},
		},
	}

	if err := s.send(&llrp.AddAccessSpec{AccessSpec: spec}, &llrp.AddAccessSpecResponse{}); err != nil {
		return errors.WithMessage(err, "failed to add AccessSpec")
	}
	if err := s.send(&llrp.EnableAccessSpec{AccessSpecID: accessSpecID}, &llrp.EnableAccessSpecResponse{}); err != nil {
		return errors.WithMessage(err, "failed to enable AccessSpec")
	}

	if err := group.StartAll(s.pool); err != nil {
		return err
	}
	log.Info().Msg("access operation running; press Ctrl+C to stop early")

	awaitSignal(accessDuration)

	if err := group.StopAll(s.pool); err != nil {
		log.Warn().Err(err).Msg("failed to stop inventory")
	}
	if err := s.send(&llrp.DeleteAccessSpec{AccessSpecID: accessSpecID}, &llrp.DeleteAccessSpecResponse{}); err != nil {
		log.Warn().Err(err).Msg("failed to delete AccessSpec")
	}
	if err := s.pool.DeleteAllROSpecs(s.name); err != nil {
		log.Warn().Err(err).Msg("failed to delete ROSpecs")
	}
	return nil
}

func logAccessResult(tag *llrp.TagReportData) {
	epc := hex.EncodeToString(tag.EPC())

	if res := tag.C1G2ReadOpSpecResult; res != nil {
		ev := log.Info().Str("epc", epc)
		if res.C1G2ReadOpSpecResultType == llrp.C1G2ReadSuccess {
			ev.Str("data", wordsToHex(res.Data)).Msg("read")
		} else {
			ev.Uint8("result", uint8(res.C1G2ReadOpSpecResultType)).Msg("read failed")
		}
	}

	if res := tag.C1G2WriteOpSpecResult; res != nil {
		ev := log.Info().Str("epc", epc)
		if res.C1G2WriteOpSpecResultType == llrp.C1G2WriteSuccess {
			ev.Uint16("words", res.NumWordsWritten).Msg("wrote")
		} else {
			ev.Uint8("result", uint8(res.C1G2WriteOpSpecResultType)).Msg("write failed")
		}
	}
}

func wordsToHex(words []uint16) string {
	s := ""
	for _, w := range words {
		s += fmt.Sprintf("%04X", w)
	}
	return s
}
