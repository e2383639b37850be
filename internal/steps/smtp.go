// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"
	"strings"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
)

var smtpRequiredKeys = []configuration.Key{
	configuration.GeneralSMTPHost,
	configuration.GeneralSMTPPort,
	configuration.GeneralSMTPSender,
}

// SMTPStep configures the mail relay used by the AdServer.
type SMTPStep struct {
	Store    configuration.Store
	AdServer AdServerConfig
}

func NewSMTPStep(store configuration.Store, adServer AdServerConfig) *SMTPStep {
	return &SMTPStep{
		Store:    store,
		AdServer: adServer,
	}
}

func (s *SMTPStep) Name() StepName {
	return StepSMTP
}

func (s *SMTPStep) IsDataRequired(ctx context.Context) (bool, *internal.InstallerError) {
	values, err := fetchSetValues(ctx, s.Store, smtpRequiredKeys)
	if err != nil {
		return false, err
	}
	return !allSet(values, smtpRequiredKeys), nil
}

// FetchData leaves the password out.
func (s *SMTPStep) FetchData(ctx context.Context) (StepResult, *internal.InstallerError) {
	values, err := fetchSetValues(ctx, s.Store, append([]configuration.Key{configuration.GeneralSMTPUsername}, smtpRequiredKeys...))
	if err != nil {
		return nil, err
	}
	return resultOf(!allSet(values, smtpRequiredKeys), values), nil
}

func (s *SMTPStep) Process(ctx context.Context, payload map[string]any) *internal.InstallerError {
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return err
	}
	if !required {
		return markCompleted(ctx, s.Store, s.Name())
	}

	values, verr := s.validate(ctx, payload)
	if verr != nil {
		return verr
	}
	if err := s.AdServer.Store(ctx, remoteValues(values)); err != nil {
		return peerError(err)
	}
	if err := persist(ctx, s.Store, values); err != nil {
		return err
	}
	return markCompleted(ctx, s.Store, s.Name())
}

func (s *SMTPStep) validate(ctx context.Context, payload map[string]any) (map[configuration.Key]string, *internal.InstallerError) {
	host, err := requiredStringField(payload, configuration.GeneralSMTPHost.Name)
	if err != nil {
		return nil, validationFailed("%s", err)
	}
	host = strings.ToLower(host)
	if err := validateHost(configuration.GeneralSMTPHost.Name, host); err != nil {
		return nil, validationFailed("%s", err)
	}

	port, err := parsePort(configuration.GeneralSMTPPort.Name, payload[configuration.GeneralSMTPPort.Name])
	if err != nil {
		return nil, validationFailed("%s", err)
	}

	sender, ok, err := stringField(payload, configuration.GeneralSMTPSender.Name)
	if err != nil {
		return nil, validationFailed("%s", err)
	}
	if !ok {
		supportEmail, found, serr := configuration.FetchSetValue(ctx, s.Store, configuration.GeneralSupportEmail)
		if serr != nil {
			return nil, storeError(serr)
		}
		if !found {
			return nil, validationFailed("Field `%s` must be set", configuration.GeneralSMTPSender.Name)
		}
		sender = supportEmail
	}
	if err := validateEmail(configuration.GeneralSMTPSender.Name, sender); err != nil {
		return nil, validationFailed("%s", err)
	}

	values := map[configuration.Key]string{
		configuration.GeneralSMTPHost:   host,
		configuration.GeneralSMTPPort:   strconv.Itoa(port),
		configuration.GeneralSMTPSender: sender,
	}
	for _, key := range []configuration.Key{configuration.GeneralSMTPUsername, configuration.GeneralSMTPPassword} {
		value, ok, err := stringField(payload, key.Name)
		if err != nil {
			return nil, validationFailed("%s", err)
		}
		if ok {
			values[key] = value
		}
	}
	return values, nil
}
