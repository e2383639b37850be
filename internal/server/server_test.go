// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/adshares/adcontroller/internal/config"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/adshares/adcontroller/internal/server"
	"github.com/adshares/adcontroller/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeUntilCancelled(t *testing.T) {
	store := configuration.NewMemoryStore()
	srv := server.New(config.Default(), &server.Router{
		Store: store,
		Steps: &steps.Table{},
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, listener)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + listener.Addr().String() + "/api/step")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"installer_step":null}`, string(body))

	cancel()
	assert.NoError(t, <-done)
}

func TestRunInvalidAddress(t *testing.T) {
	cfg := config.Default()
	cfg.Server.ListenAddress = "127.0.0.1:99999"
	srv := server.New(cfg, &server.Router{})

	assert.Error(t, srv.Run(context.Background()))
}
