// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Current version
// Should bump this every time we make backward-compatible config schema changes
const ServiceConfigVersion = 1

const (
	SecretsBackendFile = "file"
	SecretsBackendAWS  = "aws"
)

const redacted = "<redacted>"

type ServiceConfig struct {
	Version int `yaml:"version"`
	Server  struct {
		ListenAddress string        `yaml:"listenAddress" env:"ADCONTROLLER_LISTEN_ADDRESS"`
		ReadTimeout   time.Duration `yaml:"readTimeout" env:"ADCONTROLLER_READ_TIMEOUT"`
		WriteTimeout  time.Duration `yaml:"writeTimeout" env:"ADCONTROLLER_WRITE_TIMEOUT"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" env:"ADCONTROLLER_LOG_LEVEL"`
		Dir   string `yaml:"dir" env:"ADCONTROLLER_LOG_DIR"`
	} `yaml:"log"`
	Storage struct {
		// Empty path keeps the configuration in memory
		Path string `yaml:"path" env:"ADCONTROLLER_STORAGE_PATH"`
	} `yaml:"storage"`
	Secrets struct {
		Backend   string `yaml:"backend" env:"ADCONTROLLER_SECRETS_BACKEND"`
		Dir       string `yaml:"dir" env:"ADCONTROLLER_SECRETS_DIR"`
		AWSRegion string `yaml:"awsRegion" env:"ADCONTROLLER_SECRETS_AWS_REGION"`
		AWSPrefix string `yaml:"awsPrefix" env:"ADCONTROLLER_SECRETS_AWS_PREFIX"`
	} `yaml:"secrets"`
	AdServer struct {
		BaseURL       string        `yaml:"baseURL" env:"ADCONTROLLER_ADSERVER_BASE_URL"`
		APIToken      string        `yaml:"apiToken" env:"ADCONTROLLER_ADSERVER_API_TOKEN"`
		HomeDirectory string        `yaml:"homeDirectory" env:"ADCONTROLLER_ADSERVER_HOME_DIRECTORY"`
		PHPBinary     string        `yaml:"phpBinary" env:"ADCONTROLLER_ADSERVER_PHP_BINARY"`
		Timeout       time.Duration `yaml:"timeout" env:"ADCONTROLLER_ADSERVER_TIMEOUT"`
	} `yaml:"adserver"`
	AdClassify struct {
		BaseURL string        `yaml:"baseURL" env:"ADCONTROLLER_ADCLASSIFY_BASE_URL"`
		Timeout time.Duration `yaml:"timeout" env:"ADCONTROLLER_ADCLASSIFY_TIMEOUT"`
	} `yaml:"adclassify"`
	License struct {
		BaseURL string        `yaml:"baseURL" env:"ADCONTROLLER_LICENSE_BASE_URL"`
		Timeout time.Duration `yaml:"timeout" env:"ADCONTROLLER_LICENSE_TIMEOUT"`
	} `yaml:"license"`
	Wallet struct {
		NodeAPIURL string        `yaml:"nodeAPIURL" env:"ADCONTROLLER_WALLET_NODE_API_URL"`
		NodePort   string        `yaml:"nodePort" env:"ADCONTROLLER_WALLET_NODE_PORT"`
		Timeout    time.Duration `yaml:"timeout" env:"ADCONTROLLER_WALLET_TIMEOUT"`
	} `yaml:"wallet"`
	DNS struct {
		ProbeTimeout time.Duration `yaml:"probeTimeout" env:"ADCONTROLLER_DNS_PROBE_TIMEOUT"`
	} `yaml:"dns"`
}

func Default() ServiceConfig {
	cfg := ServiceConfig{Version: ServiceConfigVersion}
	cfg.Server.ListenAddress = ":8030"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Log.Level = "info"
	cfg.Secrets.Backend = SecretsBackendFile
	cfg.Secrets.Dir = "/var/lib/adcontroller/secrets"
	cfg.Secrets.AWSPrefix = "adcontroller"
	cfg.AdServer.BaseURL = "http://localhost:8010"
	cfg.AdServer.HomeDirectory = "/home/adshares/adserver"
	cfg.AdServer.PHPBinary = "php8.1"
	cfg.AdServer.Timeout = 10 * time.Second
	cfg.AdClassify.BaseURL = "https://adclassify.adshares.net"
	cfg.AdClassify.Timeout = 10 * time.Second
	cfg.License.BaseURL = "https://account.adshares.pl"
	cfg.License.Timeout = 10 * time.Second
	cfg.Wallet.NodeAPIURL = "https://rpc.adshares.net"
	cfg.Wallet.NodePort = "6511"
	cfg.Wallet.Timeout = 10 * time.Second
	cfg.DNS.ProbeTimeout = 3 * time.Second
	return cfg
}

// Load reads the defaults, merges the YAML file on top of them (when path is
// set) and finally applies ADCONTROLLER_* environment overrides.
func Load(path string) (ServiceConfig, error) {
	k := koanf.New(".")
	// NOTE: Set parser to nil since we don't need to parse go struct
	if err := k.Load(structs.Provider(Default(), "yaml"), nil); err != nil {
		return ServiceConfig{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ServiceConfig{}, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return ServiceConfig{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := ServiceConfig{}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return ServiceConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Version > ServiceConfigVersion {
		return ServiceConfig{}, fmt.Errorf("unsupported config file version: %d", cfg.Version)
	}
	cfg.Version = ServiceConfigVersion

	if err := env.Parse(&cfg); err != nil {
		return ServiceConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c ServiceConfig) Validate() error {
	if c.Server.ListenAddress == "" {
		return fmt.Errorf("server listen address cannot be empty")
	}
	if c.Secrets.Backend != SecretsBackendFile && c.Secrets.Backend != SecretsBackendAWS {
		return fmt.Errorf("unsupported secrets backend: %s", c.Secrets.Backend)
	}
	if c.Secrets.Backend == SecretsBackendFile && c.Secrets.Dir == "" {
		return fmt.Errorf("secrets directory cannot be empty for the file backend")
	}
	timeouts := map[string]time.Duration{
		"adserver.timeout":   c.AdServer.Timeout,
		"adclassify.timeout": c.AdClassify.Timeout,
		"license.timeout":    c.License.Timeout,
		"wallet.timeout":     c.Wallet.Timeout,
		"dns.probeTimeout":   c.DNS.ProbeTimeout,
	}
	for name, timeout := range timeouts {
		if timeout <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c ServiceConfig) Redacted() ServiceConfig {
	if c.AdServer.APIToken != "" {
		c.AdServer.APIToken = redacted
	}
	return c
}
