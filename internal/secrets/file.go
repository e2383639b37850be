// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one file per secret, readable by the owner only.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (f *FileStore) SaveSecret(ctx context.Context, name string, secret string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o700); err != nil {
		return fmt.Errorf("create secrets directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("create secret file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(secret); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write secret file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close secret file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(f.Dir, name)); err != nil {
		return fmt.Errorf("replace secret file: %w", err)
	}
	return nil
}

func (f *FileStore) GetSecret(ctx context.Context, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	secret, err := os.ReadFile(filepath.Join(f.Dir, name))
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read secret file: %w", err)
	}
	return string(secret), nil
}

var _ Store = (*FileStore)(nil)
