// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/adshares/adcontroller/internal/secrets"
)

var walletKeys = []configuration.Key{
	configuration.AdServerWalletAddress,
	configuration.AdServerWalletNodeHost,
	configuration.AdServerWalletNodePort,
}

// WalletStep stores the hot wallet account, its secret key and the node the
// account lives on. The secret key never leaves the secret store except
// towards the peer AdServer.
type WalletStep struct {
	Store    configuration.Store
	Secrets  secrets.Store
	AdServer AdServerConfig
	Network  WalletNetwork
}

func NewWalletStep(store configuration.Store, secretStore secrets.Store, adServer AdServerConfig, network WalletNetwork) *WalletStep {
	return &WalletStep{
		Store:    store,
		Secrets:  secretStore,
		AdServer: adServer,
		Network:  network,
	}
}

func (s *WalletStep) Name() StepName {
	return StepWallet
}

func (s *WalletStep) IsDataRequired(ctx context.Context) (bool, *internal.InstallerError) {
	values, err := fetchSetValues(ctx, s.Store, walletKeys)
	if err != nil {
		return false, err
	}
	if !allSet(values, walletKeys) {
		return true, nil
	}
	return s.secretMissing(ctx)
}

func (s *WalletStep) secretMissing(ctx context.Context) (bool, *internal.InstallerError) {
	secret, err := s.Secrets.GetSecret(ctx, configuration.WalletSecretKey)
	if errors.Is(err, secrets.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		internal.Logger().Errorf("Cannot read wallet secret: %s", err)
		return false, internal.NewInstallerError(internal.InstallerErrorCodeInternal, "Cannot read wallet secret key")
	}
	return secret == "", nil
}

func (s *WalletStep) FetchData(ctx context.Context) (StepResult, *internal.InstallerError) {
	values, err := fetchSetValues(ctx, s.Store, walletKeys)
	if err != nil {
		return nil, err
	}
	required := !allSet(values, walletKeys)
	if !required {
		if required, err = s.secretMissing(ctx); err != nil {
			return nil, err
		}
	}
	return resultOf(required, values), nil
}

func (s *WalletStep) Process(ctx context.Context, payload map[string]any) *internal.InstallerError {
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return err
	}
	if !required {
		return markCompleted(ctx, s.Store, s.Name())
	}

	values, secretKey, verr := s.validate(payload)
	if verr != nil {
		return verr
	}

	remote := remoteValues(values)
	remote[configuration.WalletSecretKey] = secretKey
	if err := s.AdServer.Store(ctx, remote); err != nil {
		return peerError(err)
	}
	if err := s.Secrets.SaveSecret(ctx, configuration.WalletSecretKey, secretKey); err != nil {
		internal.Logger().Errorf("Cannot save wallet secret: %s", err)
		return internal.NewInstallerError(internal.InstallerErrorCodeInternal, "Cannot save wallet secret key")
	}
	if err := persist(ctx, s.Store, values); err != nil {
		return err
	}
	return markCompleted(ctx, s.Store, s.Name())
}

func (s *WalletStep) validate(payload map[string]any) (map[configuration.Key]string, string, *internal.InstallerError) {
	address, _, err := stringField(payload, configuration.AdServerWalletAddress.Name)
	if err != nil {
		return nil, "", validationFailed("%s", err)
	}
	accountID, err := ParseAccountID(address)
	if err != nil {
		return nil, "", InvalidWalletAddress()
	}

	secretKey, err := requiredStringField(payload, configuration.WalletSecretKey)
	if err != nil {
		return nil, "", validationFailed("%s", err)
	}
	if err := validateSecretKey(configuration.WalletSecretKey, secretKey); err != nil {
		return nil, "", validationFailed("%s", err)
	}

	host, err := requiredStringField(payload, configuration.AdServerWalletNodeHost.Name)
	if err != nil {
		return nil, "", validationFailed("%s", err)
	}
	host = strings.ToLower(host)
	if err := validateHost(configuration.AdServerWalletNodeHost.Name, host); err != nil {
		return nil, "", validationFailed("%s", err)
	}

	port, err := parsePort(configuration.AdServerWalletNodePort.Name, payload[configuration.AdServerWalletNodePort.Name])
	if err != nil {
		return nil, "", validationFailed("%s", err)
	}

	return map[configuration.Key]string{
		configuration.AdServerWalletAddress:  accountID.String(),
		configuration.AdServerWalletNodeHost: host,
		configuration.AdServerWalletNodePort: strconv.Itoa(port),
	}, strings.ToUpper(secretKey), nil
}

// NodeHostByAccountAddress asks the wallet network which host serves the
// node the account belongs to.
func (s *WalletStep) NodeHostByAccountAddress(ctx context.Context, accountID AccountID) (string, *internal.InstallerError) {
	host, err := s.Network.NodeHost(ctx, accountID.NodeID())
	if err != nil {
		return "", externalError("Wallet network", err, internal.InstallerErrorCodeExternalServiceRejected)
	}
	return host, nil
}

func InvalidWalletAddress() *internal.InstallerError {
	return validationFailed("Field `%s` must be a valid ADS account", configuration.AdServerWalletAddress.Name)
}
