// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/clients"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/adshares/adcontroller/internal/secrets"
	"github.com/adshares/adcontroller/internal/steps"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var walletSecretKey = strings.Repeat("ab", 32)

type WalletStepTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *configuration.MemoryStore
	secrets  *SecretsMock
	adServer *AdServerConfigMock
	network  *WalletNetworkMock
	step     *steps.WalletStep
}

func TestWalletStepSuite(t *testing.T) {
	suite.Run(t, new(WalletStepTestSuite))
}

func (s *WalletStepTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = configuration.NewMemoryStore()
	s.secrets = &SecretsMock{}
	s.adServer = &AdServerConfigMock{}
	s.network = &WalletNetworkMock{}
	s.step = steps.NewWalletStep(s.store, s.secrets, s.adServer, s.network)
}

func (s *WalletStepTestSuite) seedWallet() {
	seed(s.store, map[configuration.Key]string{
		configuration.AdServerWalletAddress:  "0001-00000001-8B4E",
		configuration.AdServerWalletNodeHost: "n1.example.net",
		configuration.AdServerWalletNodePort: "6511",
	})
}

func (s *WalletStepTestSuite) validPayload() map[string]any {
	return map[string]any{
		"wallet_address":    "0001-00000001-XXXX",
		"wallet_secret_key": walletSecretKey,
		"wallet_node_host":  "N1.example.net",
		"wallet_node_port":  float64(6511),
	}
}

func (s *WalletStepTestSuite) TestFetchDataEmpty() {
	result, err := s.step.FetchData(s.ctx)
	s.Nil(err)
	s.Equal(steps.StepResult{configuration.DataRequired: true}, result)
	s.Empty(s.secrets.Calls)
}

func (s *WalletStepTestSuite) TestFetchDataWithoutSecret() {
	s.seedWallet()
	s.secrets.On("GetSecret", mock.Anything, configuration.WalletSecretKey).Return("", secrets.ErrNotFound).Once()

	result, err := s.step.FetchData(s.ctx)
	s.Nil(err)
	s.Equal(true, result[configuration.DataRequired])
	s.Equal("n1.example.net", result["wallet_node_host"])
	s.NotContains(result, configuration.WalletSecretKey)
}

func (s *WalletStepTestSuite) TestFetchDataComplete() {
	s.seedWallet()
	s.secrets.On("GetSecret", mock.Anything, configuration.WalletSecretKey).Return(walletSecretKey, nil).Once()

	result, err := s.step.FetchData(s.ctx)
	s.Nil(err)
	s.Equal(steps.StepResult{
		configuration.DataRequired: false,
		"wallet_address":           "0001-00000001-8B4E",
		"wallet_node_host":         "n1.example.net",
		"wallet_node_port":         "6511",
	}, result)
}

func (s *WalletStepTestSuite) TestSecretStoreFailure() {
	s.seedWallet()
	s.secrets.On("GetSecret", mock.Anything, mock.Anything).Return("", errors.New("permission denied")).Once()

	_, err := s.step.IsDataRequired(s.ctx)
	s.Require().NotNil(err)
	s.Equal(internal.InstallerErrorCodeInternal, err.ErrorCode)
}

func (s *WalletStepTestSuite) TestProcess() {
	s.adServer.On("Store", mock.Anything, map[string]string{
		"wallet_address":    "0001-00000001-8B4E",
		"wallet_secret_key": strings.ToUpper(walletSecretKey),
		"wallet_node_host":  "n1.example.net",
		"wallet_node_port":  "6511",
	}).Return(nil).Once()
	s.secrets.On("SaveSecret", mock.Anything, configuration.WalletSecretKey, strings.ToUpper(walletSecretKey)).Return(nil).Once()

	s.Require().Nil(s.step.Process(s.ctx, s.validPayload()))

	s.adServer.AssertExpectations(s.T())
	s.secrets.AssertExpectations(s.T())
	values, err := s.store.FetchValuesByNames(s.ctx, configuration.ModuleAdServer, []string{"wallet_address", "wallet_node_host", "wallet_node_port", "wallet_secret_key"})
	s.NoError(err)
	s.Equal(map[string]string{
		"wallet_address":   "0001-00000001-8B4E",
		"wallet_node_host": "n1.example.net",
		"wallet_node_port": "6511",
	}, values)
	s.Equal("wallet", installerStep(s.store))
}

func (s *WalletStepTestSuite) TestProcessValidation() {
	tests := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{name: "bad address", field: "wallet_address", value: "not-an-id", message: "Field `wallet_address` must be a valid ADS account"},
		{name: "bad checksum", field: "wallet_address", value: "0001-00000001-0000", message: "Field `wallet_address` must be a valid ADS account"},
		{name: "short secret", field: "wallet_secret_key", value: "abcd", message: "Field `wallet_secret_key` must be a hexadecimal string of 64 characters"},
		{name: "bad host", field: "wallet_node_host", value: "n1 example", message: "Field `wallet_node_host` must be a valid host name"},
		{name: "bad port", field: "wallet_node_port", value: "0", message: "Field `wallet_node_port` must be a port number between 1 and 65535"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			payload := s.validPayload()
			payload[tt.field] = tt.value

			err := s.step.Process(s.ctx, payload)
			s.Require().NotNil(err)
			s.Equal(internal.InstallerErrorCodeValidationFailed, err.ErrorCode)
			s.Equal(tt.message, err.Error())
		})
	}
	s.Empty(s.adServer.Calls)
	s.secrets.AssertNotCalled(s.T(), "SaveSecret", mock.Anything, mock.Anything, mock.Anything)
}

func (s *WalletStepTestSuite) TestProcessWhenComplete() {
	s.seedWallet()
	s.secrets.On("GetSecret", mock.Anything, configuration.WalletSecretKey).Return(walletSecretKey, nil)

	s.Nil(s.step.Process(s.ctx, s.validPayload()))
	s.Nil(s.step.Process(s.ctx, nil))
	s.Empty(s.adServer.Calls)
	s.Equal("wallet", installerStep(s.store))
}

func (s *WalletStepTestSuite) TestNodeHostByAccountAddress() {
	id, err := steps.ParseAccountID("0025-0000000A-BB97")
	s.Require().NoError(err)
	s.network.On("NodeHost", mock.Anything, uint16(0x25)).Return("n37.example.net", nil).Once()

	host, ierr := s.step.NodeHostByAccountAddress(s.ctx, id)
	s.Nil(ierr)
	s.Equal("n37.example.net", host)
}

func (s *WalletStepTestSuite) TestNodeHostUnknownNode() {
	id, err := steps.ParseAccountID("0030-00000001-2DF1")
	s.Require().NoError(err)
	s.network.On("NodeHost", mock.Anything, uint16(0x30)).
		Return("", &clients.UnexpectedResponseError{Service: "Wallet network", StatusCode: http.StatusNotFound, Message: "Node not found"}).Once()

	_, ierr := s.step.NodeHostByAccountAddress(s.ctx, id)
	s.Require().NotNil(ierr)
	s.Equal(internal.InstallerErrorCodeExternalServiceRejected, ierr.ErrorCode)
	s.Equal("Node not found", ierr.Error())
}
