// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/adshares/adcontroller/internal/clients"
)

type AdClassify interface {
	CreateAccount(ctx context.Context, email string, name string) (clients.APIKey, error)
}

type AdServerConfig interface {
	Fetch(ctx context.Context) (map[string]any, error)
	SetupAdClassify(ctx context.Context, baseURI string, keyName string, keySecret string) error
	Store(ctx context.Context, values map[string]string) error
}

type LicenseServer interface {
	FetchLicense(ctx context.Context, key string) (clients.License, error)
	CreateCommunityLicense(ctx context.Context, email string, name string) (string, error)
}

type WalletNetwork interface {
	NodeHost(ctx context.Context, nodeID uint16) (string, error)
}

type Prober interface {
	Probe(ctx context.Context, baseURL string) (clients.ProbeResult, error)
}

type PresenceChecker interface {
	Check(module string) error
	EnvFile(module string) (string, error)
}
