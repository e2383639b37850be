// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/adshares/adcontroller/internal/presence"
	"github.com/adshares/adcontroller/internal/steps"
	"github.com/stretchr/testify/suite"
)

type StatusStepTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *configuration.MemoryStore
	checker *PresenceCheckerMock
	step    *steps.StatusStep
}

func TestStatusStepSuite(t *testing.T) {
	suite.Run(t, new(StatusStepTestSuite))
}

func (s *StatusStepTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = configuration.NewMemoryStore()
	s.checker = &PresenceCheckerMock{}
	s.step = steps.NewStatusStep(s.store, s.checker)
}

func (s *StatusStepTestSuite) TestFetchData() {
	seed(s.store, map[configuration.Key]string{configuration.AppInstallerStep: "smtp"})
	s.checker.On("Check", presence.ModuleAdServer).Return(nil).Once()
	s.checker.On("EnvFile", presence.ModuleAdServer).Return("/home/adshares/adserver/.env", nil).Once()

	result, err := s.step.FetchData(s.ctx)
	s.Require().Nil(err)
	s.Equal(steps.StepResult{
		configuration.DataRequired: false,
		"adserver_env_file":        "/home/adshares/adserver/.env",
		"installer_step":           "smtp",
	}, result)
}

func (s *StatusStepTestSuite) TestFetchDataServiceNotPresent() {
	s.checker.On("Check", presence.ModuleAdServer).
		Return(fmt.Errorf("%w: File `.env` is missing", presence.ErrServiceNotPresent)).Once()

	_, err := s.step.FetchData(s.ctx)
	s.Require().NotNil(err)
	s.Equal(internal.InstallerErrorCodeServiceNotPresent, err.ErrorCode)
	s.Equal(500, err.ErrorCode.HTTPStatus())
	s.Contains(err.Error(), "File `.env` is missing")
}

func (s *StatusStepTestSuite) TestProcess() {
	s.Nil(s.step.Process(s.ctx, nil))
	s.Equal("status", installerStep(s.store))
	s.Empty(s.checker.Calls)
}
