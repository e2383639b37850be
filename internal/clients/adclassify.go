// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package clients

import (
	"context"
	"fmt"
	"net/http"
)

type APIKey struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// AdClassifyClient registers AdServers in the AdClassify classification service.
type AdClassifyClient struct {
	client jsonClient
}

func NewAdClassifyClient(baseURL string, httpCli *http.Client) *AdClassifyClient {
	return &AdClassifyClient{client: newJSONClient("AdClassify", baseURL, httpCli)}
}

// CreateAccount creates an account keyed by (email, name) and returns its API key pair.
func (c *AdClassifyClient) CreateAccount(ctx context.Context, email string, name string) (APIKey, error) {
	request := map[string]string{
		"email": email,
		"name":  name,
	}
	response := APIKey{}
	if err := c.client.do(ctx, http.MethodPost, "/api/v1/accounts", request, &response); err != nil {
		return APIKey{}, err
	}
	if response.Name == "" || response.Secret == "" {
		return APIKey{}, &TransportError{
			Service: c.client.service,
			Err:     fmt.Errorf("response does not contain an API key"),
		}
	}
	return response, nil
}
