// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/adshares/adcontroller/internal"
	"github.com/adshares/adcontroller/internal/configuration"
	"github.com/adshares/adcontroller/internal/steps"
)

const (
	maxBodySize    = 1 << 20
	successMessage = "Data saved successfully"
)

type StepLookup interface {
	Lookup(name steps.StepName) (steps.InstallerStep, *internal.InstallerError)
}

type NodeHostResolver interface {
	NodeHostByAccountAddress(ctx context.Context, accountID steps.AccountID) (string, *internal.InstallerError)
}

type LicenseRegistrar interface {
	SetLicenseKey(ctx context.Context, payload map[string]any) *internal.InstallerError
	ClaimCommunityLicense(ctx context.Context) *internal.InstallerError
}

// Router exposes the installer steps over HTTP.
type Router struct {
	Store   configuration.Store
	Steps   StepLookup
	Wallet  NodeHostResolver
	License LicenseRegistrar
	// Port announced together with the wallet node host
	NodePort string
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /api/step", rt.previousStep)
	mux.HandleFunc("GET /api/step/{step}", rt.getStep)
	mux.HandleFunc("POST /api/step/{step}", rt.setStep)
	mux.HandleFunc("POST /api/node_host", rt.nodeHost)
	mux.HandleFunc("POST /api/license_key", rt.setLicenseKey)
	mux.HandleFunc("GET /api/community_license", rt.claimCommunityLicense)
	return withRequestID(withAccessLog(withRecover(mux)))
}

func (rt *Router) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) previousStep(w http.ResponseWriter, r *http.Request) {
	step, ok, err := steps.CurrentStep(r.Context(), rt.Store)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var value *string
	if ok {
		value = &step
	}
	writeJSON(w, http.StatusOK, map[string]*string{configuration.AppInstallerStep.Name: value})
}

func (rt *Router) resolve(r *http.Request) (steps.InstallerStep, *internal.InstallerError) {
	name, err := steps.ParseStepName(r.PathValue("step"))
	if err != nil {
		return nil, err
	}
	step, err := rt.Steps.Lookup(name)
	if err != nil {
		return nil, err
	}
	return step, nil
}

func (rt *Router) getStep(w http.ResponseWriter, r *http.Request) {
	step, err := rt.resolve(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := step.FetchData(r.Context())
	if err != nil {
		err.ErrorStep = string(step.Name())
		writeError(w, r, err)
		return
	}
	if result == nil {
		result = steps.StepResult{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) setStep(w http.ResponseWriter, r *http.Request) {
	step, err := rt.resolve(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := step.Process(r.Context(), readPayload(r)); err != nil {
		err.ErrorStep = string(step.Name())
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": successMessage})
}

func (rt *Router) nodeHost(w http.ResponseWriter, r *http.Request) {
	payload := readPayload(r)
	address, _ := payload[configuration.AdServerWalletAddress.Name].(string)
	accountID, perr := steps.ParseAccountID(address)
	if perr != nil {
		writeError(w, r, steps.InvalidWalletAddress())
		return
	}

	host, err := rt.Wallet.NodeHostByAccountAddress(r.Context(), accountID)
	if err != nil {
		err.ErrorStep = string(steps.StepWallet)
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		configuration.AdServerWalletNodeHost.Name: host,
		configuration.AdServerWalletNodePort.Name: rt.NodePort,
	})
}

func (rt *Router) setLicenseKey(w http.ResponseWriter, r *http.Request) {
	if err := rt.License.SetLicenseKey(r.Context(), readPayload(r)); err != nil {
		err.ErrorStep = string(steps.StepLicense)
		writeError(w, r, err)
		return
	}
	redirectToStep(w, r, steps.StepLicense)
}

func (rt *Router) claimCommunityLicense(w http.ResponseWriter, r *http.Request) {
	if err := rt.License.ClaimCommunityLicense(r.Context()); err != nil {
		err.ErrorStep = string(steps.StepLicense)
		writeError(w, r, err)
		return
	}
	redirectToStep(w, r, steps.StepLicense)
}

func redirectToStep(w http.ResponseWriter, r *http.Request, name steps.StepName) {
	http.Redirect(w, r, "/api/step/"+string(name), http.StatusFound)
}

// readPayload decodes a JSON object body. Anything else yields an empty payload.
func readPayload(r *http.Request) map[string]any {
	payload := map[string]any{}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil || len(data) == 0 {
		return payload
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		internal.Logger().Warnf("Cannot write response: %s", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err *internal.InstallerError) {
	status := err.ErrorCode.HTTPStatus()
	logger := internal.Logger().With(
		"code", err.ErrorCode.String(),
		"step", err.ErrorStep,
		"request_id", RequestID(r.Context()),
	)
	if status >= http.StatusInternalServerError {
		logger.Errorf("Request failed: %s", err)
	} else {
		logger.Infof("Request rejected: %s", err)
	}
	writeJSON(w, status, errorBody{Code: status, Message: err.ErrorMsg})
}
