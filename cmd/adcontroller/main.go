// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type flag struct {
	Debug      bool
	ConfigPath string
}

func newRootCmd() *cobra.Command {
	flags := &flag{}
	rootCmd := &cobra.Command{
		Use:           "adcontroller",
		Short:         "Installer and configuration backend for AdServer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to the config file")

	rootCmd.AddCommand(newServeCmd(flags), newConfigCmd(flags))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
