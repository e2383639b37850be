// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package internal

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "adcontroller.log"

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel // Default to info level
	}
}

// InitLogger replaces the global zap logger. Logs go to stdout and, when
// logDir is set, to adcontroller.log inside it.
func InitLogger(logLevel string, logDir string) error {
	outputs := []string{"stdout"}
	if logDir != "" {
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			err := os.MkdirAll(logDir, os.ModePerm)
			if err != nil {
				return err
			}
		}
		outputs = append(outputs, filepath.Join(logDir, logFileName))
	}
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.Level.SetLevel(parseLogLevel(logLevel))
	loggerConfig.OutputPaths = outputs
	loggerRoot, err := loggerConfig.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(loggerRoot)
	zap.S().Infof("Log level set to %s", logLevel)

	return nil
}

func Logger() *zap.SugaredLogger {
	return zap.S()
}

// Critical logs at error level and tags the entry so alerting can pick it up.
func Critical(msg string, keysAndValues ...any) {
	Logger().Errorw(msg, append([]any{"severity", "critical"}, keysAndValues...)...)
}
