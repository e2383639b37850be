// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"net/http"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/clients"
	"github.com/adshares/adcontroller/internal/configuration"
)

type dnsModule struct {
	module string
	// name the service reports in its info.json
	infoName string
	urlKey   string
}

var dnsModules = []dnsModule{
	{module: configuration.ModuleAdPanel, infoName: "adpanel", urlKey: clients.RemoteAdPanelURL},
	{module: configuration.ModuleAdServer, infoName: "adserver", urlKey: clients.RemoteAdServerURL},
	{module: configuration.ModuleAdUser, infoName: "aduser", urlKey: clients.RemoteAdUserURL},
}

// ModuleStatus is the reachability of one service as seen from here.
type ModuleStatus struct {
	Module string  `json:"module"`
	URL    *string `json:"url"`
	Code   int     `json:"code"`
}

// DNSStep reports whether the public URLs of the services resolve to the
// right services. It never blocks the wizard.
type DNSStep struct {
	Store    configuration.Store
	AdServer AdServerConfig
	Prober   Prober
}

func NewDNSStep(store configuration.Store, adServer AdServerConfig, prober Prober) *DNSStep {
	return &DNSStep{
		Store:    store,
		AdServer: adServer,
		Prober:   prober,
	}
}

func (s *DNSStep) Name() StepName {
	return StepDNS
}

func (s *DNSStep) IsDataRequired(ctx context.Context) (bool, *internal.InstallerError) {
	return false, nil
}

func (s *DNSStep) FetchData(ctx context.Context) (StepResult, *internal.InstallerError) {
	required, err := s.IsDataRequired(ctx)
	if err != nil {
		return nil, err
	}
	remote, ferr := s.AdServer.Fetch(ctx)
	if ferr != nil {
		return nil, peerError(ferr)
	}

	result := StepResult{configuration.DataRequired: required}
	for _, m := range dnsModules {
		url, _ := clients.StringValue(remote, m.urlKey)
		result[m.module] = s.moduleStatus(ctx, m, url)
	}
	return result, nil
}

func (s *DNSStep) moduleStatus(ctx context.Context, m dnsModule, url string) ModuleStatus {
	status := ModuleStatus{Module: m.module}
	if url == "" {
		status.Code = http.StatusPreconditionFailed
		return status
	}
	status.URL = &url

	probe, err := s.Prober.Probe(ctx, url)
	switch {
	case err != nil:
		internal.Logger().Debugf("Probe of %s failed: %s", url, err)
		status.Code = http.StatusBadGateway
	case probe.Module != m.infoName:
		status.Code = http.StatusNotImplemented
	default:
		status.Code = probe.StatusCode
	}
	return status
}

func (s *DNSStep) Process(ctx context.Context, payload map[string]any) *internal.InstallerError {
	return markCompleted(ctx, s.Store, s.Name())
}
