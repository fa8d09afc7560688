// Package logging builds the diagnostic zap logger written to the launch log file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conn-castle/launch/internal/messages"
)

// ParseLevel maps a config level string to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf(messages.LoggingUnknownLevelFmt, level)
	}
}

// New returns a JSON logger appending to path at the given level and a function
// that flushes and closes the file. An empty path yields a no-op logger.
func New(path string, level string) (*zap.Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf(messages.LoggingCreateDirFmt, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf(messages.LoggingOpenFileFmt, path, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), zap.NewAtomicLevelAt(lvl))
	logger := zap.New(core).Named("launch")

	closeFn := func() error {
		_ = logger.Sync()
		return file.Close()
	}
	return logger, closeFn, nil
}
