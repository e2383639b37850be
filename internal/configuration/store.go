// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package configuration

import "context"

// Store persists configuration entries. A missing entry is the null value.
// Writes are last-write-wins; there is no locking across read-then-write.
type Store interface {
	FetchValueByKey(ctx context.Context, key Key) (string, bool, error)
	// FetchValuesByNames returns only the names that are set.
	FetchValuesByNames(ctx context.Context, module string, names []string) (map[string]string, error)
	InsertOrUpdate(ctx context.Context, module string, values map[string]string) error
	InsertOrUpdateOne(ctx context.Context, key Key, value string) error
}

// FetchSetValue returns the value only when it is present and not empty.
func FetchSetValue(ctx context.Context, store Store, key Key) (string, bool, error) {
	value, ok, err := store.FetchValueByKey(ctx, key)
	if err != nil || !ok || value == "" {
		return "", false, err
	}
	return value, true, nil
}
