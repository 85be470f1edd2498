//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the llrp-cli command tree.
// Each subcommand drives one LLRP Reader through a single session.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/config"
)

var (
	Version = "dev"

	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "llrp-cli",
		Short: "Drive EPCglobal LLRP RFID Readers from the command line",
		Args:  cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path of config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(capabilitiesCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(accessCmd)
	rootCmd.AddCommand(monitorCmd)
}

// setupLogging configures the global logger after flags are parsed.
func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// loadConfig reads the config file if one was given, else the defaults.
func loadConfig() (config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}
