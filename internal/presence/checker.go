// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package presence

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adshares/adcontroller/internal"
	"github.com/bitfield/script"
)

const ModuleAdServer = "adserver"

var ErrServiceNotPresent = errors.New("service not present")

// artisanTimeout bounds the artisan smoke run, in seconds.
const artisanTimeout = 1

// Checker verifies that a locally installed service looks runnable.
type Checker struct {
	HomeDirectory string
	PHPBinary     string
}

func NewChecker(homeDirectory, phpBinary string) *Checker {
	return &Checker{
		HomeDirectory: homeDirectory,
		PHPBinary:     phpBinary,
	}
}

func notPresent(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrServiceNotPresent, fmt.Sprintf(format, args...))
}

func (c *Checker) Check(module string) error {
	switch module {
	case ModuleAdServer:
		return c.checkAdServer()
	default:
		return notPresent("Unsupported service")
	}
}

func (c *Checker) EnvFile(module string) (string, error) {
	switch module {
	case ModuleAdServer:
		return filepath.Join(c.HomeDirectory, ".env"), nil
	default:
		return "", notPresent("Unsupported service")
	}
}

func (c *Checker) checkAdServer() error {
	logger := internal.Logger()
	if err := script.IfExists(c.HomeDirectory).Error(); err != nil {
		return notPresent("Home directory does not exists")
	}
	for _, file := range []string{"artisan", ".env"} {
		if err := script.IfExists(filepath.Join(c.HomeDirectory, file)).Error(); err != nil {
			return notPresent("File `%s` is missing", file)
		}
	}

	cmd := fmt.Sprintf("timeout %d %s %s", artisanTimeout, c.PHPBinary, quote(filepath.Join(c.HomeDirectory, "artisan")))
	logger.Debugf("Running presence check: %s", cmd)
	if out, err := script.Exec(cmd).String(); err != nil {
		logger.Debugf("Presence check failed: %s, output: %s", err, out)
		return notPresent("Cannot execute `artisan` command")
	}
	return nil
}

func quote(arg string) string {
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
