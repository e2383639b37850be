// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/clients"
	"github.com/adshares/adcontroller/internal/configuration"
)

var classifierKeys = []configuration.Key{
	configuration.AdClassifyAPIKeyName,
	configuration.AdClassifyAPIKeySecret,
}

// ClassifierStep registers the AdServer with AdClassify and hands the
// resulting API key over to the peer AdServer.
type ClassifierStep struct {
	// AdClassify base URL as announced to the peer AdServer
	BaseURI    string
	Store      configuration.Store
	AdClassify AdClassify
	AdServer   AdServerConfig
}

func NewClassifierStep(baseURI string, store configuration.Store, adClassify AdClassify, adServer AdServerConfig) *ClassifierStep {
	return &ClassifierStep{
		BaseURI:    baseURI,
		Store:      store,
		AdClassify: adClassify,
		AdServer:   adServer,
	}
}

func (s *ClassifierStep) Name() StepName {
	return StepClassifier
}

// IsDataRequired is true when there is no local key pair or the peer
// AdServer reports a different key name.
func (s *ClassifierStep) IsDataRequired(ctx context.Context) (bool, *internal.InstallerError) {
	local, err := s.Store.FetchValuesByNames(ctx, configuration.ModuleAdClassify, []string{
		configuration.AdClassifyAPIKeyName.Name,
		configuration.AdClassifyAPIKeySecret.Name,
	})
	if err != nil {
		return false, storeError(err)
	}
	for _, key := range classifierKeys {
		if local[key.Name] == "" {
			return true, nil
		}
	}

	remote, ferr := s.AdServer.Fetch(ctx)
	if ferr != nil {
		return false, peerError(ferr)
	}
	remoteName, ok := clients.StringValue(remote, clients.RemoteClassifierAPIKeyName)
	return !ok || remoteName != local[configuration.AdClassifyAPIKeyName.Name], nil
}

func (s *ClassifierStep) FetchData(ctx context.Context) (StepResult, *internal.InstallerError) {
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return nil, err
	}
	if required {
		if _, _, err := s.prerequisites(ctx); err != nil {
			if err.ErrorCode == internal.InstallerErrorCodePrerequisiteMissing {
				return nil, prerequisiteMissing("Base step must be completed")
			}
			return nil, err
		}
	}
	return StepResult{configuration.DataRequired: required}, nil
}

func (s *ClassifierStep) Process(ctx context.Context, payload map[string]any) *internal.InstallerError {
	// Prerequisites come first so that a missing base step never reaches
	// any external service.
	name, email, err := s.prerequisites(ctx)
	if err != nil {
		return err
	}
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return err
	}
	if !required {
		return markCompleted(ctx, s.Store, s.Name())
	}

	apiKey, cerr := s.AdClassify.CreateAccount(ctx, email, name)
	if cerr != nil {
		return externalError("AdClassify", cerr, internal.InstallerErrorCodeExternalServiceRejected)
	}
	if err := s.AdServer.SetupAdClassify(ctx, s.BaseURI, apiKey.Name, apiKey.Secret); err != nil {
		return peerError(err)
	}
	if err := persist(ctx, s.Store, map[configuration.Key]string{
		configuration.AdClassifyAPIKeyName:   apiKey.Name,
		configuration.AdClassifyAPIKeySecret: apiKey.Secret,
	}); err != nil {
		return err
	}
	return markCompleted(ctx, s.Store, s.Name())
}

func (s *ClassifierStep) prerequisites(ctx context.Context) (string, string, *internal.InstallerError) {
	name, ok, err := configuration.FetchSetValue(ctx, s.Store, configuration.AdServerName)
	if err != nil {
		return "", "", storeError(err)
	}
	if !ok {
		return "", "", prerequisiteMissing("AdServer's name must be set")
	}
	email, ok, err := configuration.FetchSetValue(ctx, s.Store, configuration.GeneralTechnicalEmail)
	if err != nil {
		return "", "", storeError(err)
	}
	if !ok {
		return "", "", prerequisiteMissing("Technical e-mail must be set")
	}
	return name, email, nil
}
