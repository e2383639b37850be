// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
)

var baseKeys = []configuration.Key{
	configuration.AdServerName,
	configuration.AdServerDomain,
	configuration.GeneralTechnicalEmail,
	configuration.GeneralSupportEmail,
	configuration.AdPanelURL,
	configuration.AdServerURL,
	configuration.AdUserURL,
}

// BaseStep collects the AdServer name, its domain, contact e-mails and the
// public URLs of the services.
type BaseStep struct {
	Store    configuration.Store
	AdServer AdServerConfig
}

func NewBaseStep(store configuration.Store, adServer AdServerConfig) *BaseStep {
	return &BaseStep{
		Store:    store,
		AdServer: adServer,
	}
}

func (s *BaseStep) Name() StepName {
	return StepBase
}

func (s *BaseStep) IsDataRequired(ctx context.Context) (bool, *internal.InstallerError) {
	values, err := fetchSetValues(ctx, s.Store, baseKeys)
	if err != nil {
		return false, err
	}
	return !allSet(values, baseKeys), nil
}

func (s *BaseStep) FetchData(ctx context.Context) (StepResult, *internal.InstallerError) {
	values, err := fetchSetValues(ctx, s.Store, baseKeys)
	if err != nil {
		return nil, err
	}
	return resultOf(!allSet(values, baseKeys), values), nil
}

func (s *BaseStep) Process(ctx context.Context, payload map[string]any) *internal.InstallerError {
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return err
	}
	if !required {
		return markCompleted(ctx, s.Store, s.Name())
	}

	values, verr := s.validate(payload)
	if verr != nil {
		return validationFailed("%s", verr)
	}
	if err := s.AdServer.Store(ctx, remoteValues(values)); err != nil {
		return peerError(err)
	}
	if err := persist(ctx, s.Store, values); err != nil {
		return err
	}
	return markCompleted(ctx, s.Store, s.Name())
}

func (s *BaseStep) validate(payload map[string]any) (map[configuration.Key]string, error) {
	name, err := requiredStringField(payload, configuration.AdServerName.Name)
	if err != nil {
		return nil, err
	}
	if err := validateName(configuration.AdServerName.Name, name); err != nil {
		return nil, err
	}

	domain, err := requiredStringField(payload, configuration.AdServerDomain.Name)
	if err != nil {
		return nil, err
	}
	domain = strings.ToLower(domain)
	if err := validateHost(configuration.AdServerDomain.Name, domain); err != nil {
		return nil, err
	}

	technicalEmail, err := requiredStringField(payload, configuration.GeneralTechnicalEmail.Name)
	if err != nil {
		return nil, err
	}
	if err := validateEmail(configuration.GeneralTechnicalEmail.Name, technicalEmail); err != nil {
		return nil, err
	}

	supportEmail, ok, err := stringField(payload, configuration.GeneralSupportEmail.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		supportEmail = technicalEmail
	}
	if err := validateEmail(configuration.GeneralSupportEmail.Name, supportEmail); err != nil {
		return nil, err
	}

	values := map[configuration.Key]string{
		configuration.AdServerName:          name,
		configuration.AdServerDomain:        domain,
		configuration.GeneralTechnicalEmail: technicalEmail,
		configuration.GeneralSupportEmail:   supportEmail,
	}

	defaultURLs := map[configuration.Key]string{
		configuration.AdPanelURL:  fmt.Sprintf("https://%s", domain),
		configuration.AdServerURL: fmt.Sprintf("https://app.%s", domain),
		configuration.AdUserURL:   fmt.Sprintf("https://au.%s", domain),
	}
	for key, fallback := range defaultURLs {
		url, ok, err := stringField(payload, key.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			url = fallback
		}
		url = strings.TrimSuffix(url, "/")
		if err := validateURL(key.Name, url); err != nil {
			return nil, err
		}
		values[key] = url
	}
	return values, nil
}
