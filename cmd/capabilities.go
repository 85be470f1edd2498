//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities <reader>",
	Short: "Query a Reader's capabilities and print them as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCapabilities,
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := dial(cfg, args[0])
	if err != nil {
		return err
	}
	defer s.close()

	caps, err := s.pool.GetCapabilities(s.name)
	if err != nil {
		return err
	}

	if gdc := caps.GeneralDeviceCapabilities; gdc != nil {
		log.Info().
			Uint32("manufacturer", gdc.DeviceManufacturer).
			Uint32("model", gdc.Model).
			Str("firmware", gdc.FirmwareVersion).
			Uint16("antennas", gdc.MaxSupportedAntennas).
			Msg("device")
	}
	if lc := caps.LLRPCapabilities; lc != nil {
		log.Info().
			Uint32("maxROSpecs", lc.MaxROSpecs).
			Uint32("maxAccessSpecs", lc.MaxAccessSpecs).
			Bool("rfSurvey", lc.CanDoRFSurvey).
			Msg("llrp")
	}

	out, err := json.MarshalIndent(caps, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to render capabilities")
	}
	fmt.Println(string(out))
	return nil
}
