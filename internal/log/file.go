package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileWriter returns a size-rotated log file writer for path.
// MERGETO_LOG_MAX_SIZE (MB), MERGETO_LOG_MAX_BACKUPS and MERGETO_LOG_MAX_AGE
// (days) override the rotation limits.
func NewFileWriter(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}
	if v, ok := envInt("MERGETO_LOG_MAX_SIZE"); ok && v > 0 {
		w.MaxSize = v
	}
	if v, ok := envInt("MERGETO_LOG_MAX_BACKUPS"); ok && v >= 0 {
		w.MaxBackups = v
	}
	if v, ok := envInt("MERGETO_LOG_MAX_AGE"); ok && v > 0 {
		w.MaxAge = v
	}
	return w, nil
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}
