// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package configuration

// Modules namespace configuration keys.
const (
	ModuleApp        = "App"
	ModuleGeneral    = "General"
	ModuleAdServer   = "AdServer"
	ModuleAdClassify = "AdClassify"
	ModuleAdPanel    = "AdPanel"
	ModuleAdUser     = "AdUser"
)

// Key identifies one configuration entry. Uniqueness is (Module, Name).
type Key struct {
	Module string
	Name   string
}

func (k Key) String() string {
	return k.Module + "." + k.Name
}

// DataRequired is the flag every step result carries.
const DataRequired = "data_required"

var (
	AppInstallerStep = Key{ModuleApp, "installer_step"}

	GeneralTechnicalEmail = Key{ModuleGeneral, "base_technical_email"}
	GeneralSupportEmail   = Key{ModuleGeneral, "base_support_email"}
	GeneralSMTPHost       = Key{ModuleGeneral, "smtp_host"}
	GeneralSMTPPort       = Key{ModuleGeneral, "smtp_port"}
	GeneralSMTPUsername   = Key{ModuleGeneral, "smtp_username"}
	GeneralSMTPPassword   = Key{ModuleGeneral, "smtp_password"}
	GeneralSMTPSender     = Key{ModuleGeneral, "smtp_sender"}

	AdServerName           = Key{ModuleAdServer, "base_adserver_name"}
	AdServerDomain         = Key{ModuleAdServer, "base_domain"}
	AdServerURL            = Key{ModuleAdServer, "base_adserver_url"}
	AdServerWalletAddress  = Key{ModuleAdServer, "wallet_address"}
	AdServerWalletNodeHost = Key{ModuleAdServer, "wallet_node_host"}
	AdServerWalletNodePort = Key{ModuleAdServer, "wallet_node_port"}
	AdServerLicenseKey     = Key{ModuleAdServer, "license_key"}
	AdServerLicenseData    = Key{ModuleAdServer, "license_data"}

	AdPanelURL = Key{ModuleAdPanel, "base_adpanel_url"}
	AdUserURL  = Key{ModuleAdUser, "base_aduser_url"}

	AdClassifyAPIKeyName   = Key{ModuleAdClassify, "classifier_api_key_name"}
	AdClassifyAPIKeySecret = Key{ModuleAdClassify, "classifier_api_key_secret"}
)

// Names of values not persisted locally but exchanged with the peer AdServer.
const WalletSecretKey = "wallet_secret_key"
