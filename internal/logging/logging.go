// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 28
)

var (
	mu      sync.Mutex
	logFile *lumberjack.Logger
	debug   bool
)

// Init sends log output to stderr and, when logPath is set, to a rotating file.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		logFile = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close detaches the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// SetDebug toggles LogDebug output.
func SetDebug(enabled bool) {
	mu.Lock()
	debug = enabled
	mu.Unlock()
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogDebug logs only when debug output is enabled.
func LogDebug(format string, args ...any) {
	mu.Lock()
	enabled := debug
	mu.Unlock()
	if !enabled {
		return
	}
	log.Println("[DEBUG] " + fmt.Sprintf(format, args...))
}

// LogRequest writes one line per served HTTP request.
func LogRequest(method, uri string, status int, latency time.Duration, remote string, err error) {
	msg := buildRequestMessage(method, uri, status, latency, remote, err)
	log.Println(msg)
}

func buildRequestMessage(method, uri string, status int, latency time.Duration, remote string, err error) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		m = "UNKNOWN"
	}
	uriValue := strings.TrimSpace(uri)
	if uriValue == "" {
		uriValue = "/"
	}
	remoteValue := strings.TrimSpace(remote)
	if remoteValue == "" {
		remoteValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", m)}
	parts = append(parts, fmt.Sprintf("uri=%s", uriValue))
	parts = append(parts, fmt.Sprintf("status=%d", status))
	parts = append(parts, fmt.Sprintf("latency=%s", latency.Round(time.Microsecond)))
	parts = append(parts, fmt.Sprintf("remote=%s", remoteValue))
	if err != nil {
		parts = append(parts, fmt.Sprintf("error=%q", err.Error()))
	}
	return strings.Join(parts, " ")
}
