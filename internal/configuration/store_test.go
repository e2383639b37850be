// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package configuration_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	open  func(t *testing.T) configuration.Store
	store configuration.Store
	ctx   context.Context
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{
		open: func(t *testing.T) configuration.Store {
			return configuration.NewMemoryStore()
		},
	})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{
		open: func(t *testing.T) configuration.Store {
			store, err := configuration.OpenSQLite(filepath.Join(t.TempDir(), "configuration.db"))
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			t.Cleanup(func() {
				if err := store.Close(); err != nil {
					t.Fatalf("close: %v", err)
				}
			})
			return store
		},
	})
}

func (s *StoreTestSuite) SetupTest() {
	s.store = s.open(s.T())
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TestMissingValue() {
	value, ok, err := s.store.FetchValueByKey(s.ctx, configuration.AppInstallerStep)
	s.NoError(err)
	s.False(ok)
	s.Empty(value)
}

func (s *StoreTestSuite) TestInsertOrUpdateRoundTrip() {
	err := s.store.InsertOrUpdate(s.ctx, configuration.ModuleAdClassify, map[string]string{
		configuration.AdClassifyAPIKeyName.Name:   "key-name",
		configuration.AdClassifyAPIKeySecret.Name: "key-secret",
	})
	s.Require().NoError(err)

	value, ok, err := s.store.FetchValueByKey(s.ctx, configuration.AdClassifyAPIKeyName)
	s.NoError(err)
	s.True(ok)
	s.Equal("key-name", value)

	values, err := s.store.FetchValuesByNames(s.ctx, configuration.ModuleAdClassify, []string{
		configuration.AdClassifyAPIKeyName.Name,
		configuration.AdClassifyAPIKeySecret.Name,
		"unknown",
	})
	s.NoError(err)
	s.Equal(map[string]string{
		"classifier_api_key_name":   "key-name",
		"classifier_api_key_secret": "key-secret",
	}, values)
}

func (s *StoreTestSuite) TestInsertOrUpdateOneOverwrites() {
	s.Require().NoError(s.store.InsertOrUpdateOne(s.ctx, configuration.AppInstallerStep, "base"))
	s.Require().NoError(s.store.InsertOrUpdateOne(s.ctx, configuration.AppInstallerStep, "wallet"))

	value, ok, err := s.store.FetchValueByKey(s.ctx, configuration.AppInstallerStep)
	s.NoError(err)
	s.True(ok)
	s.Equal("wallet", value)
}

func (s *StoreTestSuite) TestModulesAreNamespaces() {
	s.Require().NoError(s.store.InsertOrUpdateOne(s.ctx, configuration.Key{Module: "A", Name: "url"}, "a"))
	s.Require().NoError(s.store.InsertOrUpdateOne(s.ctx, configuration.Key{Module: "B", Name: "url"}, "b"))

	values, err := s.store.FetchValuesByNames(s.ctx, "A", []string{"url"})
	s.NoError(err)
	s.Equal(map[string]string{"url": "a"}, values)

	values, err = s.store.FetchValuesByNames(s.ctx, "C", nil)
	s.NoError(err)
	s.Empty(values)
}

func (s *StoreTestSuite) TestFetchSetValueIgnoresEmpty() {
	s.Require().NoError(s.store.InsertOrUpdateOne(s.ctx, configuration.AdServerName, ""))

	_, ok, err := configuration.FetchSetValue(s.ctx, s.store, configuration.AdServerName)
	s.NoError(err)
	s.False(ok)

	s.Require().NoError(s.store.InsertOrUpdateOne(s.ctx, configuration.AdServerName, "My AdServer"))
	value, ok, err := configuration.FetchSetValue(s.ctx, s.store, configuration.AdServerName)
	s.NoError(err)
	s.True(ok)
	s.Equal("My AdServer", value)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := configuration.OpenSQLite(" "); err == nil {
		t.Fatal("expected error")
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configuration.db")
	ctx := context.Background()

	store, err := configuration.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.InsertOrUpdateOne(ctx, configuration.AppInstallerStep, "dns"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store, err = configuration.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	value, ok, err := store.FetchValueByKey(ctx, configuration.AppInstallerStep)
	if err != nil || !ok || value != "dns" {
		t.Fatalf("value = %q, ok = %v, err = %v", value, ok, err)
	}
}
