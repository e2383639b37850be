// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/clients"
	"github.com/adshares/adcontroller/internal/config"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/adshares/adcontroller/internal/presence"
	"github.com/adshares/adcontroller/internal/secrets"
	"github.com/adshares/adcontroller/internal/server"
	"github.com/adshares/adcontroller/internal/steps"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *flag) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the installer API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if flags.Debug {
				cfg.Log.Level = "debug"
			}
			if err := internal.InitLogger(cfg.Log.Level, cfg.Log.Dir); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.ServiceConfig) error {
	logger := internal.Logger()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	secretStore, err := openSecrets(ctx, cfg)
	if err != nil {
		return err
	}

	table, router := buildSteps(cfg, store, secretStore)
	if err := table.Validate(); err != nil {
		return err
	}

	logger.Infof("Starting adcontroller, storage=%q secrets=%s", cfg.Storage.Path, cfg.Secrets.Backend)
	return server.New(cfg, router).Run(ctx)
}

func openStore(cfg config.ServiceConfig) (configuration.Store, func(), error) {
	if cfg.Storage.Path == "" {
		internal.Logger().Warn("No storage path configured, configuration is kept in memory")
		return configuration.NewMemoryStore(), func() {}, nil
	}
	store, err := configuration.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open configuration store: %w", err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			internal.Logger().Warnf("Failed to close configuration store: %s", err)
		}
	}, nil
}

func openSecrets(ctx context.Context, cfg config.ServiceConfig) (secrets.Store, error) {
	switch cfg.Secrets.Backend {
	case config.SecretsBackendAWS:
		store, err := secrets.NewAWSSM(ctx, cfg.Secrets.AWSPrefix, cfg.Secrets.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS secrets manager client: %w", err)
		}
		return store, nil
	default:
		return secrets.NewFileStore(cfg.Secrets.Dir), nil
	}
}

func buildSteps(cfg config.ServiceConfig, store configuration.Store, secretStore secrets.Store) (*steps.Table, *server.Router) {
	adServer := clients.NewAdServerConfigClient(cfg.AdServer.BaseURL, cfg.AdServer.APIToken, clients.NewHTTPClient(cfg.AdServer.Timeout))
	adClassify := clients.NewAdClassifyClient(cfg.AdClassify.BaseURL, clients.NewHTTPClient(cfg.AdClassify.Timeout))
	license := clients.NewLicenseClient(cfg.License.BaseURL, clients.NewHTTPClient(cfg.License.Timeout))
	network := clients.NewWalletNetworkClient(cfg.Wallet.NodeAPIURL, clients.NewHTTPClient(cfg.Wallet.Timeout))
	prober := clients.NewProber(clients.NewHTTPClient(cfg.DNS.ProbeTimeout))
	checker := presence.NewChecker(cfg.AdServer.HomeDirectory, cfg.AdServer.PHPBinary)

	walletStep := steps.NewWalletStep(store, secretStore, adServer, network)
	licenseStep := steps.NewLicenseStep(store, adServer, license)
	table := &steps.Table{
		Base:       steps.NewBaseStep(store, adServer),
		Classifier: steps.NewClassifierStep(cfg.AdClassify.BaseURL, store, adClassify, adServer),
		DNS:        steps.NewDNSStep(store, adServer, prober),
		License:    licenseStep,
		SMTP:       steps.NewSMTPStep(store, adServer),
		Status:     steps.NewStatusStep(store, checker),
		Wallet:     walletStep,
	}
	return table, &server.Router{
		Store:    store,
		Steps:    table,
		Wallet:   walletStep,
		License:  licenseStep,
		NodePort: cfg.Wallet.NodePort,
	}
}
