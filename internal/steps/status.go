// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/adshares/adcontroller/internal/presence"
)

// StatusStep closes the wizard by checking that the AdServer is installed
// where it is expected.
type StatusStep struct {
	Store   configuration.Store
	Checker PresenceChecker
}

func NewStatusStep(store configuration.Store, checker PresenceChecker) *StatusStep {
	return &StatusStep{
		Store:   store,
		Checker: checker,
	}
}

func (s *StatusStep) Name() StepName {
	return StepStatus
}

func (s *StatusStep) IsDataRequired(ctx context.Context) (bool, *internal.InstallerError) {
	return false, nil
}

func (s *StatusStep) FetchData(ctx context.Context) (StepResult, *internal.InstallerError) {
	if err := s.Checker.Check(presence.ModuleAdServer); err != nil {
		internal.Logger().Warnf("AdServer is not present: %s", err)
		return nil, internal.NewInstallerError(internal.InstallerErrorCodeServiceNotPresent, "%s", err)
	}
	envFile, err := s.Checker.EnvFile(presence.ModuleAdServer)
	if err != nil {
		return nil, internal.NewInstallerError(internal.InstallerErrorCodeServiceNotPresent, "%s", err)
	}
	step, ok, ierr := CurrentStep(ctx, s.Store)
	if ierr != nil {
		return nil, ierr
	}

	result := StepResult{
		configuration.DataRequired:          false,
		"adserver_env_file":                 envFile,
		configuration.AppInstallerStep.Name: nil,
	}
	if ok {
		result[configuration.AppInstallerStep.Name] = step
	}
	return result, nil
}

func (s *StatusStep) Process(ctx context.Context, payload map[string]any) *internal.InstallerError {
	return markCompleted(ctx, s.Store, s.Name())
}
