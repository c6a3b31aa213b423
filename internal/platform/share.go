// Package platform holds desktop stand-ins for mobile platform services.
package platform

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decred/slog"

	"github.com/jask/jaskwallet/internal/service"
)

const dataURIPrefix = "data:text/plain;base64,"

var log = slog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger slog.Logger) {
	log = logger
}

// FileSharer shares payloads by leaving them as files in Dir.
type FileSharer struct {
	Dir string
}

// Share writes data URI payloads to Dir. File path payloads are already on
// disk and are only recorded.
func (f *FileSharer) Share(ctx context.Context, p service.SharePayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.URL == "" {
		return errors.New("platform: empty share payload")
	}
	if !strings.HasPrefix(p.URL, dataURIPrefix) {
		if _, err := os.Stat(p.URL); err != nil {
			return fmt.Errorf("platform: shared file: %w", err)
		}
		log.Infof("Shared %q: %s", p.Title, p.URL)
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(p.URL, dataURIPrefix))
	if err != nil {
		return fmt.Errorf("platform: decode payload: %w", err)
	}
	if err := os.MkdirAll(f.Dir, 0o700); err != nil {
		return err
	}
	path := filepath.Join(f.Dir, fileNameFor(p.Subject))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("platform: write payload: %w", err)
	}
	log.Infof("Shared %q: %s", p.Title, path)
	return nil
}

func fileNameFor(subject string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '(', r == ')':
			return r
		}
		return '_'
	}, strings.TrimSpace(subject))
	if name == "" {
		name = "shared"
	}
	return name + ".json"
}
