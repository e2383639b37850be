// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const maxNameLength = 64

var (
	emailPattern     = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	hostnamePattern  = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)*[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
	urlPattern       = regexp.MustCompile(`^https?://[a-z0-9.-]+(:\d+)?(/\S*)?$`)
	secretKeyPattern = regexp.MustCompile(`^[0-9A-Fa-f]{64}$`)
	licenseKeyRegexp = regexp.MustCompile(`^[A-Z]{3}-[0-9a-zA-Z]{6}-[0-9a-zA-Z]{5}-[0-9a-zA-Z]{5}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{4}$`)
)

func validateName(field string, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Field `%s` cannot be empty", field)
	}
	if len(s) > maxNameLength {
		return fmt.Errorf("Field `%s` must be at most %d characters", field, maxNameLength)
	}
	return nil
}

func validateEmail(field string, s string) error {
	if !emailPattern.MatchString(s) {
		return fmt.Errorf("Field `%s` must be a valid e-mail address", field)
	}
	return nil
}

func validateHost(field string, s string) error {
	if len(s) > 253 || !hostnamePattern.MatchString(s) {
		return fmt.Errorf("Field `%s` must be a valid host name", field)
	}
	return nil
}

func validateURL(field string, s string) error {
	if !urlPattern.MatchString(s) {
		return fmt.Errorf("Field `%s` must be a valid URL", field)
	}
	return nil
}

func validateSecretKey(field string, s string) error {
	if !secretKeyPattern.MatchString(s) {
		return fmt.Errorf("Field `%s` must be a hexadecimal string of 64 characters", field)
	}
	return nil
}

func validateLicenseKey(s string) error {
	if !licenseKeyRegexp.MatchString(s) {
		return fmt.Errorf("Field `license_key` must be a valid license key")
	}
	return nil
}

// parsePort accepts a port sent either as a JSON number or as a string.
func parsePort(field string, value any) (int, error) {
	invalid := fmt.Errorf("Field `%s` must be a port number between 1 and 65535", field)
	var port int
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, invalid
		}
		port = int(v)
	case int:
		port = v
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, invalid
		}
		port = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, invalid
		}
		port = i
	default:
		return 0, invalid
	}
	if port < 1 || port > 65535 {
		return 0, invalid
	}
	return port, nil
}

// stringField reads an optional string from the payload. Empty strings count
// as absent.
func stringField(payload map[string]any, field string) (string, bool, error) {
	value, ok := payload[field]
	if !ok || value == nil {
		return "", false, nil
	}
	s, ok := value.(string)
	if !ok {
		return "", false, fmt.Errorf("Field `%s` must be a string", field)
	}
	s = strings.TrimSpace(s)
	return s, s != "", nil
}

func requiredStringField(payload map[string]any, field string) (string, error) {
	s, ok, err := stringField(payload, field)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("Field `%s` must be set", field)
	}
	return s, nil
}
