// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"encoding/json"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
	koanfjson "github.com/knadh/koanf/parsers/json"
)

const licenseField = "license"

// LicenseStep registers the license the AdServer operates under. The key is
// either entered by the operator or claimed as a community license.
type LicenseStep struct {
	Store    configuration.Store
	AdServer AdServerConfig
	License  LicenseServer
}

func NewLicenseStep(store configuration.Store, adServer AdServerConfig, license LicenseServer) *LicenseStep {
	return &LicenseStep{
		Store:    store,
		AdServer: adServer,
		License:  license,
	}
}

func (s *LicenseStep) Name() StepName {
	return StepLicense
}

func (s *LicenseStep) IsDataRequired(ctx context.Context) (bool, *internal.InstallerError) {
	_, ok, err := configuration.FetchSetValue(ctx, s.Store, configuration.AdServerLicenseKey)
	if err != nil {
		return false, storeError(err)
	}
	return !ok, nil
}

func (s *LicenseStep) FetchData(ctx context.Context) (StepResult, *internal.InstallerError) {
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return nil, err
	}
	result := StepResult{configuration.DataRequired: required, licenseField: nil}

	data, ok, serr := configuration.FetchSetValue(ctx, s.Store, configuration.AdServerLicenseData)
	if serr != nil {
		return nil, storeError(serr)
	}
	if ok {
		license, perr := koanfjson.Parser().Unmarshal([]byte(data))
		if perr != nil {
			internal.Logger().Errorf("Stored license data is corrupted: %s", perr)
			return nil, internal.NewInstallerError(internal.InstallerErrorCodeInternal, "Stored license data is corrupted")
		}
		result[licenseField] = license
	}
	return result, nil
}

func (s *LicenseStep) Process(ctx context.Context, payload map[string]any) *internal.InstallerError {
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return err
	}
	if !required {
		return markCompleted(ctx, s.Store, s.Name())
	}

	if _, ok := payload[configuration.AdServerLicenseKey.Name]; !ok {
		return validationFailed("License key must be set")
	}
	if err := s.SetLicenseKey(ctx, payload); err != nil {
		return err
	}
	return markCompleted(ctx, s.Store, s.Name())
}

// SetLicenseKey verifies the key against the license server and stores it
// together with the license it unlocks.
func (s *LicenseStep) SetLicenseKey(ctx context.Context, payload map[string]any) *internal.InstallerError {
	key, verr := requiredStringField(payload, configuration.AdServerLicenseKey.Name)
	if verr != nil {
		return validationFailed("%s", verr)
	}
	if verr := validateLicenseKey(key); verr != nil {
		return validationFailed("%s", verr)
	}
	return s.setLicenseKey(ctx, key)
}

// ClaimCommunityLicense obtains a free license for the AdServer registered
// in the base step.
func (s *LicenseStep) ClaimCommunityLicense(ctx context.Context) *internal.InstallerError {
	values, err := fetchSetValues(ctx, s.Store, []configuration.Key{configuration.AdServerName, configuration.GeneralTechnicalEmail})
	if err != nil {
		return err
	}
	name, ok := values[configuration.AdServerName]
	if !ok {
		return prerequisiteMissing("AdServer's name must be set")
	}
	email, ok := values[configuration.GeneralTechnicalEmail]
	if !ok {
		return prerequisiteMissing("Technical e-mail must be set")
	}

	key, cerr := s.License.CreateCommunityLicense(ctx, email, name)
	if cerr != nil {
		return externalError("License server", cerr, internal.InstallerErrorCodeExternalServiceRejected)
	}
	internal.Logger().Infof("Community license claimed for %s", name)
	return s.setLicenseKey(ctx, key)
}

func (s *LicenseStep) setLicenseKey(ctx context.Context, key string) *internal.InstallerError {
	license, err := s.License.FetchLicense(ctx, key)
	if err != nil {
		return externalError("License server", err, internal.InstallerErrorCodeExternalServiceRejected)
	}
	data, err := json.Marshal(license)
	if err != nil {
		return internal.NewInstallerError(internal.InstallerErrorCodeInternal, "Cannot encode license: %s", err)
	}

	if err := s.AdServer.Store(ctx, map[string]string{configuration.AdServerLicenseKey.Name: key}); err != nil {
		return peerError(err)
	}
	return persist(ctx, s.Store, map[configuration.Key]string{
		configuration.AdServerLicenseKey:  key,
		configuration.AdServerLicenseData: string(data),
	})
}
