// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package clients

import (
	"context"
	"fmt"
	"net/http"
)

// Keys of the peer AdServer configuration snapshot.
const (
	RemoteAdPanelURL           = "base_adpanel_url"
	RemoteAdServerURL          = "base_adserver_url"
	RemoteAdUserURL            = "base_aduser_url"
	RemoteClassifierAPIKeyName = "classifier_api_key_name"

	remoteClassifierBaseURL      = "classifier_external_base_url"
	remoteClassifierAPIKeySecret = "classifier_api_key_secret"
)

const adServerConfigPath = "/api/config"

// AdServerConfigClient reads and updates the configuration of the peer AdServer.
type AdServerConfigClient struct {
	client jsonClient
}

func NewAdServerConfigClient(baseURL string, apiToken string, httpCli *http.Client) *AdServerConfigClient {
	client := newJSONClient("AdServer", baseURL, httpCli)
	if apiToken != "" {
		client.headers.Set("Authorization", "Bearer "+apiToken)
	}
	return &AdServerConfigClient{client: client}
}

// Fetch returns the remote configuration snapshot.
func (c *AdServerConfigClient) Fetch(ctx context.Context) (map[string]any, error) {
	snapshot := map[string]any{}
	if err := c.client.do(ctx, http.MethodGet, adServerConfigPath, nil, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (c *AdServerConfigClient) SetupAdClassify(ctx context.Context, baseURI string, keyName string, keySecret string) error {
	return c.Store(ctx, map[string]string{
		remoteClassifierBaseURL:      baseURI,
		RemoteClassifierAPIKeyName:   keyName,
		remoteClassifierAPIKeySecret: keySecret,
	})
}

// Store patches the given values into the remote configuration.
func (c *AdServerConfigClient) Store(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	return c.client.do(ctx, http.MethodPatch, adServerConfigPath, values, nil)
}

// StringValue reads a scalar from a configuration snapshot. Missing and null
// values are reported as not set.
func StringValue(snapshot map[string]any, key string) (string, bool) {
	value, ok := snapshot[key]
	if !ok || value == nil {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	default:
		return fmt.Sprint(v), true
	}
}
