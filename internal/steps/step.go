// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"regexp"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
)

type StepName string

const (
	StepBase       StepName = "base"
	StepClassifier StepName = "classifier"
	StepDNS        StepName = "dns"
	StepLicense    StepName = "license"
	StepSMTP       StepName = "smtp"
	StepStatus     StepName = "status"
	StepWallet     StepName = "wallet"
)

// Sequence is the order in which the wizard walks through the steps.
var Sequence = []StepName{
	StepBase,
	StepWallet,
	StepLicense,
	StepClassifier,
	StepDNS,
	StepSMTP,
	StepStatus,
}

var stepNamePattern = regexp.MustCompile(`^[a-z]+$`)

// ParseStepName checks the route segment and resolves it to a known step.
func ParseStepName(name string) (StepName, *internal.InstallerError) {
	if !stepNamePattern.MatchString(name) {
		return "", internal.NewInstallerError(internal.InstallerErrorCodeInvalidStepName, "Invalid step (%s)", name)
	}
	switch StepName(name) {
	case StepBase, StepClassifier, StepDNS, StepLicense, StepSMTP, StepStatus, StepWallet:
		return StepName(name), nil
	default:
		return "", internal.NewInstallerError(internal.InstallerErrorCodeUnsupportedStep, "Unsupported step (%s)", name)
	}
}

// StepResult is what FetchData hands back to the wizard. It always carries
// configuration.DataRequired.
type StepResult map[string]any

type InstallerStep interface {
	// The name of the step
	Name() StepName

	// IsDataRequired reports whether the step still needs input from the operator.
	// It must not change any state.
	IsDataRequired(ctx context.Context) (bool, *internal.InstallerError)

	// FetchData returns the current state of the step. It is read only.
	FetchData(ctx context.Context) (StepResult, *internal.InstallerError)

	// Process validates the payload, talks to external services when needed,
	// persists the outcome and marks the step as the current installer step.
	// When no data is required it only marks the step.
	Process(ctx context.Context, payload map[string]any) *internal.InstallerError
}

// Table holds one implementation per step.
type Table struct {
	Base       InstallerStep
	Classifier InstallerStep
	DNS        InstallerStep
	License    InstallerStep
	SMTP       InstallerStep
	Status     InstallerStep
	Wallet     InstallerStep
}

func (t *Table) Lookup(name StepName) (InstallerStep, *internal.InstallerError) {
	var step InstallerStep
	switch name {
	case StepBase:
		step = t.Base
	case StepClassifier:
		step = t.Classifier
	case StepDNS:
		step = t.DNS
	case StepLicense:
		step = t.License
	case StepSMTP:
		step = t.SMTP
	case StepStatus:
		step = t.Status
	case StepWallet:
		step = t.Wallet
	}
	if step == nil {
		return nil, internal.NewInstallerError(internal.InstallerErrorCodeUnsupportedStep, "Unsupported step (%s)", name)
	}
	return step, nil
}

// Validate makes sure every step in the sequence has an implementation
// that reports the matching name.
func (t *Table) Validate() *internal.InstallerError {
	for _, name := range Sequence {
		step, err := t.Lookup(name)
		if err != nil {
			return err
		}
		if step.Name() != name {
			return internal.NewInstallerError(internal.InstallerErrorCodeInternal, "step %s is registered as %s", step.Name(), name)
		}
	}
	return nil
}

// CurrentStep returns the last step the wizard completed, if any.
func CurrentStep(ctx context.Context, store configuration.Store) (string, bool, *internal.InstallerError) {
	step, ok, err := store.FetchValueByKey(ctx, configuration.AppInstallerStep)
	if err != nil {
		return "", false, storeError(err)
	}
	return step, ok, nil
}

func markCompleted(ctx context.Context, store configuration.Store, name StepName) *internal.InstallerError {
	if err := store.InsertOrUpdateOne(ctx, configuration.AppInstallerStep, string(name)); err != nil {
		return storeError(err)
	}
	internal.Logger().Infof("Installer step %s completed", name)
	return nil
}
