// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"errors"
	"fmt"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/clients"
)

func storeError(err error) *internal.InstallerError {
	internal.Logger().Errorf("Configuration store failure: %s", err)
	return internal.NewInstallerError(internal.InstallerErrorCodeInternal, "Cannot access configuration: %s", err)
}

func prerequisiteMissing(format string, args ...any) *internal.InstallerError {
	return internal.NewInstallerError(internal.InstallerErrorCodePrerequisiteMissing, format, args...)
}

func validationFailed(format string, args ...any) *internal.InstallerError {
	return internal.NewInstallerError(internal.InstallerErrorCodeValidationFailed, format, args...)
}

// externalError classifies a client failure. A remote that answered with an
// error status becomes rejectedCode; anything else means the service could
// not be reached and is reported without details.
func externalError(service string, err error, rejectedCode internal.InstallerErrorCode) *internal.InstallerError {
	var unexpected *clients.UnexpectedResponseError
	if errors.As(err, &unexpected) {
		internal.Logger().Warnf("%s rejected the request: %s", service, err)
		return internal.NewInstallerError(rejectedCode, "%s", unexpected.Error())
	}
	msg := fmt.Sprintf("%s is not accessible", service)
	internal.Critical(msg, "error", err)
	return internal.NewInstallerError(internal.InstallerErrorCodeExternalServiceUnreachable, "%s", msg)
}

// peerError is used for calls to the peer AdServer configuration API, whose
// rejections are not something the operator can fix from the wizard.
func peerError(err error) *internal.InstallerError {
	return externalError("AdServer", err, internal.InstallerErrorCodeUnexpectedResponse)
}
