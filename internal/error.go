// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package internal

import (
	"fmt"
	"net/http"
)

type InstallerErrorCode int

const (
	InstallerErrorCodeUnknown InstallerErrorCode = iota
	InstallerErrorCodeInternal
	InstallerErrorCodeInvalidStepName
	InstallerErrorCodeUnsupportedStep
	InstallerErrorCodePrerequisiteMissing
	InstallerErrorCodeExternalServiceRejected
	InstallerErrorCodeExternalServiceUnreachable
	InstallerErrorCodeValidationFailed
	InstallerErrorCodeUnexpectedResponse
	InstallerErrorCodeServiceNotPresent
)

var installerErrorCodeNames = map[InstallerErrorCode]string{
	InstallerErrorCodeUnknown:                    "Unknown",
	InstallerErrorCodeInternal:                   "Internal",
	InstallerErrorCodeInvalidStepName:            "InvalidStepName",
	InstallerErrorCodeUnsupportedStep:            "UnsupportedStep",
	InstallerErrorCodePrerequisiteMissing:        "PrerequisiteMissing",
	InstallerErrorCodeExternalServiceRejected:    "ExternalServiceRejected",
	InstallerErrorCodeExternalServiceUnreachable: "ExternalServiceUnreachable",
	InstallerErrorCodeValidationFailed:           "ValidationFailed",
	InstallerErrorCodeUnexpectedResponse:         "UnexpectedResponse",
	InstallerErrorCodeServiceNotPresent:          "ServiceNotPresent",
}

func (c InstallerErrorCode) String() string {
	if name, ok := installerErrorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("InstallerErrorCode(%d)", int(c))
}

// HTTPStatus maps an error code to the status the HTTP layer answers with.
// Anything the operator can fix from the wizard is a 422, the rest is a 500.
func (c InstallerErrorCode) HTTPStatus() int {
	switch c {
	case InstallerErrorCodeInvalidStepName,
		InstallerErrorCodeUnsupportedStep,
		InstallerErrorCodePrerequisiteMissing,
		InstallerErrorCodeExternalServiceRejected,
		InstallerErrorCodeExternalServiceUnreachable,
		InstallerErrorCodeValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type InstallerError struct {
	ErrorCode InstallerErrorCode
	ErrorMsg  string
	ErrorStep string
}

func (e *InstallerError) Error() string {
	return e.ErrorMsg
}

// NewInstallerError builds an error with a formatted message.
func NewInstallerError(code InstallerErrorCode, format string, args ...any) *InstallerError {
	return &InstallerError{
		ErrorCode: code,
		ErrorMsg:  fmt.Sprintf(format, args...),
	}
}
