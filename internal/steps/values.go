// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
)

// fetchSetValues returns the keys that hold a non-empty value.
func fetchSetValues(ctx context.Context, store configuration.Store, keys []configuration.Key) (map[configuration.Key]string, *internal.InstallerError) {
	values := make(map[configuration.Key]string, len(keys))
	for _, key := range keys {
		value, ok, err := configuration.FetchSetValue(ctx, store, key)
		if err != nil {
			return nil, storeError(err)
		}
		if ok {
			values[key] = value
		}
	}
	return values, nil
}

func allSet(values map[configuration.Key]string, keys []configuration.Key) bool {
	for _, key := range keys {
		if _, ok := values[key]; !ok {
			return false
		}
	}
	return true
}

// resultOf exposes the set values under their key names.
func resultOf(dataRequired bool, values map[configuration.Key]string) StepResult {
	result := StepResult{configuration.DataRequired: dataRequired}
	for key, value := range values {
		result[key.Name] = value
	}
	return result
}

// persist groups values by module and writes each module in one call.
func persist(ctx context.Context, store configuration.Store, values map[configuration.Key]string) *internal.InstallerError {
	byModule := map[string]map[string]string{}
	for key, value := range values {
		if byModule[key.Module] == nil {
			byModule[key.Module] = map[string]string{}
		}
		byModule[key.Module][key.Name] = value
	}
	for module, moduleValues := range byModule {
		if err := store.InsertOrUpdate(ctx, module, moduleValues); err != nil {
			return storeError(err)
		}
	}
	return nil
}

// remoteValues maps the values to the names the peer AdServer uses, which
// are the key names.
func remoteValues(values map[configuration.Key]string) map[string]string {
	remote := make(map[string]string, len(values))
	for key, value := range values {
		remote[key.Name] = value
	}
	return remote
}
