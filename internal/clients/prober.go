// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ProbeResult struct {
	StatusCode int
	// Module as reported by the service's info.json, empty when absent
	Module string
}

// Prober fetches {url}/info.json of a deployed module.
type Prober struct {
	httpCli *http.Client
}

func NewProber(httpCli *http.Client) *Prober {
	if httpCli == nil {
		httpCli = &http.Client{}
	}
	return &Prober{httpCli: httpCli}
}

// Probe returns an UnexpectedResponseError for 3xx/4xx/5xx answers and a
// TransportError when the service cannot be reached.
func (p *Prober) Probe(ctx context.Context, baseURL string) (ProbeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(baseURL, "/")+"/info.json", nil)
	if err != nil {
		return ProbeResult{}, &TransportError{Service: baseURL, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpCli.Do(req)
	if err != nil {
		return ProbeResult{}, &TransportError{Service: baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return ProbeResult{}, &UnexpectedResponseError{Service: baseURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ProbeResult{}, &TransportError{Service: baseURL, Err: fmt.Errorf("read response body: %w", err)}
	}
	var info struct {
		Module string `json:"module"`
	}
	// A body that is not JSON simply has no module
	_ = json.Unmarshal(data, &info)

	return ProbeResult{StatusCode: resp.StatusCode, Module: info.Module}, nil
}
