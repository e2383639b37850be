// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type License struct {
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Owner        string  `json:"owner"`
	DateStart    string  `json:"date_start"`
	DateEnd      string  `json:"date_end"`
	FixedFee     float64 `json:"fixed_fee"`
	DemandFee    float64 `json:"demand_fee"`
	SupplyFee    float64 `json:"supply_fee"`
	PrivateLabel bool    `json:"private_label"`
}

// LicenseClient talks to the license server.
type LicenseClient struct {
	client jsonClient
}

func NewLicenseClient(baseURL string, httpCli *http.Client) *LicenseClient {
	return &LicenseClient{client: newJSONClient("License server", baseURL, httpCli)}
}

func (c *LicenseClient) FetchLicense(ctx context.Context, key string) (License, error) {
	license := License{}
	if err := c.client.do(ctx, http.MethodGet, "/api/v1/license/"+url.PathEscape(key), nil, &license); err != nil {
		return License{}, err
	}
	return license, nil
}

// CreateCommunityLicense claims a free license and returns its key.
func (c *LicenseClient) CreateCommunityLicense(ctx context.Context, email string, name string) (string, error) {
	request := map[string]string{
		"email": email,
		"name":  name,
	}
	var response struct {
		Key string `json:"key"`
	}
	if err := c.client.do(ctx, http.MethodPost, "/api/v1/license", request, &response); err != nil {
		return "", err
	}
	if response.Key == "" {
		return "", &TransportError{
			Service: c.client.service,
			Err:     fmt.Errorf("response does not contain a license key"),
		}
	}
	return response.Key, nil
}
