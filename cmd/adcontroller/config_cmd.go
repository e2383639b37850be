// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/adshares/adcontroller/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(flags *flag) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the service configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			out, err := config.SerializeToYAML(cfg.Redacted())
			if err != nil {
				return fmt.Errorf("failed to serialize config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return configCmd
}
