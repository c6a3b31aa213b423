// Package logging owns the rotating log backend and the per-subsystem
// loggers handed to the rest of the application.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// LogFilename is the name of the active log file inside the log directory.
const LogFilename = "jaskwallet.log"

// Subsystem identifiers.
const (
	Main     = "JSKW"
	Service  = "SRVC"
	Engine   = "ENGN"
	UI       = "TUI"
	Prefs    = "PREF"
	Secrets  = "SCRT"
	Platform = "PLAT"
	DB       = "DB"
)

// logWriter forwards to the rotator once it exists. Before InitRotator is
// called output is discarded; the TUI owns stdout.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	mu.Lock()
	r := logRotator
	mu.Unlock()
	if r == nil {
		return len(p), nil
	}
	return r.Write(p)
}

var (
	mu         sync.Mutex
	logRotator *rotator.Rotator

	backendLog = slog.NewBackend(logWriter{})

	subsystemLoggers = map[string]slog.Logger{
		Main:     backendLog.Logger(Main),
		Service:  backendLog.Logger(Service),
		Engine:   backendLog.Logger(Engine),
		UI:       backendLog.Logger(UI),
		Prefs:    backendLog.Logger(Prefs),
		Secrets:  backendLog.Logger(Secrets),
		Platform: backendLog.Logger(Platform),
		DB:       backendLog.Logger(DB),
	}
)

// InitRotator initializes the log rotator to write to logDir/LogFilename and
// roll files in the same directory. It may be called again to move the log.
func InitRotator(logDir string, maxRolls int) error {
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	r, err := rotator.New(filepath.Join(logDir, LogFilename), 32*1024, false, maxRolls)
	if err != nil {
		return fmt.Errorf("create file rotator: %w", err)
	}

	mu.Lock()
	old := logRotator
	logRotator = r
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Close stops the rotator. Later log lines are discarded.
func Close() error {
	mu.Lock()
	r := logRotator
	logRotator = nil
	mu.Unlock()
	if r == nil {
		return nil
	}
	return r.Close()
}

// Logger returns the logger for subsystemID, or slog.Disabled for unknown ids.
func Logger(subsystemID string) slog.Logger {
	if l, ok := subsystemLoggers[subsystemID]; ok {
		return l
	}
	return slog.Disabled
}

// SetLogLevel sets the level of one subsystem. Invalid subsystems are
// ignored and invalid levels fall back to info.
func SetLogLevel(subsystemID, level string) {
	l, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	lvl, _ := slog.LevelFromString(level)
	l.SetLevel(lvl)
}

// SetLogLevels sets every subsystem to level.
func SetLogLevels(level string) error {
	if _, ok := slog.LevelFromString(level); !ok {
		return errors.New("invalid log level " + level)
	}
	for id := range subsystemLoggers {
		SetLogLevel(id, level)
	}
	return nil
}

// Subsystems returns the sorted subsystem ids.
func Subsystems() []string {
	ids := make([]string, 0, len(subsystemLoggers))
	for id := range subsystemLoggers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
