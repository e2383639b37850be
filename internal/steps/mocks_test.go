// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps_test

import (
	"context"

	"github.com/adshares/adcontroller/internal/clients"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/stretchr/testify/mock"
)

type AdClassifyMock struct {
	mock.Mock
}

func (m *AdClassifyMock) CreateAccount(ctx context.Context, email string, name string) (clients.APIKey, error) {
	args := m.Called(ctx, email, name)
	return args.Get(0).(clients.APIKey), args.Error(1)
}

type AdServerConfigMock struct {
	mock.Mock
}

func (m *AdServerConfigMock) Fetch(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *AdServerConfigMock) SetupAdClassify(ctx context.Context, baseURI string, keyName string, keySecret string) error {
	args := m.Called(ctx, baseURI, keyName, keySecret)
	return args.Error(0)
}

func (m *AdServerConfigMock) Store(ctx context.Context, values map[string]string) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

type LicenseServerMock struct {
	mock.Mock
}

func (m *LicenseServerMock) FetchLicense(ctx context.Context, key string) (clients.License, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(clients.License), args.Error(1)
}

func (m *LicenseServerMock) CreateCommunityLicense(ctx context.Context, email string, name string) (string, error) {
	args := m.Called(ctx, email, name)
	return args.String(0), args.Error(1)
}

type WalletNetworkMock struct {
	mock.Mock
}

func (m *WalletNetworkMock) NodeHost(ctx context.Context, nodeID uint16) (string, error) {
	args := m.Called(ctx, nodeID)
	return args.String(0), args.Error(1)
}

type ProberMock struct {
	mock.Mock
}

func (m *ProberMock) Probe(ctx context.Context, baseURL string) (clients.ProbeResult, error) {
	args := m.Called(ctx, baseURL)
	return args.Get(0).(clients.ProbeResult), args.Error(1)
}

type PresenceCheckerMock struct {
	mock.Mock
}

func (m *PresenceCheckerMock) Check(module string) error {
	args := m.Called(module)
	return args.Error(0)
}

func (m *PresenceCheckerMock) EnvFile(module string) (string, error) {
	args := m.Called(module)
	return args.String(0), args.Error(1)
}

type SecretsMock struct {
	mock.Mock
}

func (m *SecretsMock) SaveSecret(ctx context.Context, name string, secret string) error {
	args := m.Called(ctx, name, secret)
	return args.Error(0)
}

func (m *SecretsMock) GetSecret(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func seed(store configuration.Store, values map[configuration.Key]string) {
	for key, value := range values {
		if err := store.InsertOrUpdateOne(context.Background(), key, value); err != nil {
			panic(err)
		}
	}
}

func baseConfiguration() map[configuration.Key]string {
	return map[configuration.Key]string{
		configuration.AdServerName:          "My AdServer",
		configuration.AdServerDomain:        "example.com",
		configuration.GeneralTechnicalEmail: "tech@example.com",
		configuration.GeneralSupportEmail:   "support@example.com",
		configuration.AdPanelURL:            "https://example.com",
		configuration.AdServerURL:           "https://app.example.com",
		configuration.AdUserURL:             "https://au.example.com",
	}
}

func installerStep(store configuration.Store) string {
	step, _, err := store.FetchValueByKey(context.Background(), configuration.AppInstallerStep)
	if err != nil {
		panic(err)
	}
	return step
}
