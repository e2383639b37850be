// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"context"
	"sync"
)

// MemoryStore keeps configuration in process memory. Used when no storage
// path is configured and in tests.
type MemoryStore struct {
	mutex  sync.RWMutex
	values map[Key]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: map[Key]string{},
	}
}

func (m *MemoryStore) FetchValueByKey(ctx context.Context, key Key) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryStore) FetchValuesByNames(ctx context.Context, module string, names []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	result := map[string]string{}
	for _, name := range names {
		if value, ok := m.values[Key{module, name}]; ok {
			result[name] = value
		}
	}
	return result, nil
}

func (m *MemoryStore) InsertOrUpdate(ctx context.Context, module string, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for name, value := range values {
		m.values[Key{module, name}] = value
	}
	return nil
}

func (m *MemoryStore) InsertOrUpdateOne(ctx context.Context, key Key, value string) error {
	return m.InsertOrUpdate(ctx, key.Module, map[string]string{key.Name: value})
}

var _ Store = (*MemoryStore)(nil)
