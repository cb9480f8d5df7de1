package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/breach-estimator/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logEncoders = map[string]func(zapcore.EncoderConfig) zapcore.Encoder{
	"console": zapcore.NewConsoleEncoder,
	"json":    zapcore.NewJSONEncoder,
}

// initializeLogger builds the CLI logger. A non-empty levelOverride wins over
// the configured level.
func initializeLogger(cfg config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	level, err := parseLogLevel(cfg.Level, levelOverride)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = "json"
	}
	newEncoder, ok := logEncoders[format]
	if !ok {
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	sink, err := logSink(cfg.OutputFile)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(encoderConfig(format)), sink, level)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(sink)), nil
}

func parseLogLevel(configured, override string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(override))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(configured))
	}
	switch name {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	}

	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return level, fmt.Errorf("invalid log level: %s", name)
	}
	return level, nil
}

func encoderConfig(format string) zapcore.EncoderConfig {
	if format == "console" {
		return zap.NewDevelopmentEncoderConfig()
	}
	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	return encoder
}

// logSink writes to stderr, or appends to path after creating its directory.
func logSink(path string) (zapcore.WriteSyncer, error) {
	if path == "" {
		return zapcore.Lock(os.Stderr), nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	sink, _, err := zap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return sink, nil
}
