// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var ErrNotFound = errors.New("secret not found")

var secretNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Store keeps values that must not land in the configuration store.
type Store interface {
	SaveSecret(ctx context.Context, name string, secret string) error
	// GetSecret returns ErrNotFound when nothing was saved under name.
	GetSecret(ctx context.Context, name string) (string, error)
}

func validateName(name string) error {
	if !secretNamePattern.MatchString(name) {
		return fmt.Errorf("invalid secret name %q", name)
	}
	return nil
}
