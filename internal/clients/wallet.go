// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package clients

import (
	"context"
	"fmt"
	"net/http"
)

// WalletNetworkClient resolves which host serves a node of the wallet network.
type WalletNetworkClient struct {
	client jsonClient
}

func NewWalletNetworkClient(baseURL string, httpCli *http.Client) *WalletNetworkClient {
	return &WalletNetworkClient{client: newJSONClient("Wallet network", baseURL, httpCli)}
}

func (c *WalletNetworkClient) NodeHost(ctx context.Context, nodeID uint16) (string, error) {
	var response struct {
		Host string `json:"host"`
	}
	if err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/nodes/%04X", nodeID), nil, &response); err != nil {
		return "", err
	}
	if response.Host == "" {
		return "", &UnexpectedResponseError{
			Service:    c.client.service,
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("Node %04X has no host", nodeID),
		}
	}
	return response.Host, nil
}
