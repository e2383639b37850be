// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package clients

import "fmt"

// UnexpectedResponseError is returned when the remote service answered with a
// status the caller did not expect.
type UnexpectedResponseError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UnexpectedResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s responded with status %d", e.Service, e.StatusCode)
	}
	return e.Message
}

// TransportError wraps failures where no usable response came back.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
