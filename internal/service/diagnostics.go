package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/jask/jaskwallet/internal/engine"
	"github.com/jask/jaskwallet/internal/store"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// excludedSubtrees are dropped from exported state.
var excludedSubtrees = []string{
	"AssetsController",
	"AssetsContractController",
	"AssetsDetectionController",
	"PhishingController",
}

// AppInfo names the running build.
type AppInfo struct {
	Name    string
	Version string
	Build   string
}

func (a AppInfo) StateLogFileName() string {
	return fmt.Sprintf("state-logs-v%s-(%s).json", a.Version, a.Build)
}

func (a AppInfo) StateLogSubject() string {
	return fmt.Sprintf("%s State logs -  v%s (%s)", a.Name, a.Version, a.Build)
}

// SharePayload is handed to the platform share target. URL is either a
// data URI or a file path.
type SharePayload struct {
	URL     string
	Subject string
	Title   string
}

// BuildSnapshot deep-copies full, removes the excluded controllers and
// adds keyrings under the keyring controller.
func BuildSnapshot(full store.FullState, keyrings []engine.Keyring) (map[string]interface{}, error) {
	raw, err := jsonAPI.Marshal(full)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	var snap map[string]interface{}
	if err := jsonAPI.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("copy state: %w", err)
	}

	eng, ok := snap["engine"].(map[string]interface{})
	if !ok {
		return nil, errors.New("snapshot has no engine state")
	}
	bg, ok := eng["backgroundState"].(map[string]interface{})
	if !ok {
		return nil, errors.New("snapshot has no background state")
	}
	for _, key := range excludedSubtrees {
		delete(bg, key)
	}

	kc, ok := bg["KeyringController"].(map[string]interface{})
	if !ok {
		kc = make(map[string]interface{})
		bg["KeyringController"] = kc
	}
	rawRings, err := jsonAPI.Marshal(keyrings)
	if err != nil {
		return nil, fmt.Errorf("marshal keyrings: %w", err)
	}
	var rings []interface{}
	if err := jsonAPI.Unmarshal(rawRings, &rings); err != nil {
		return nil, fmt.Errorf("copy keyrings: %w", err)
	}
	if rings == nil {
		rings = []interface{}{}
	}
	kc["keyrings"] = rings
	return snap, nil
}

// DiagnosticsService exports the state log.
type DiagnosticsService struct {
	State    StateReader
	Keyrings KeyringReader
	Sharer   Sharer
	App      AppInfo
	// Dir receives the state log file.
	Dir string
	// Inline shares a base64 data URI instead of a file path.
	Inline bool
}

// Export builds, serializes and shares the snapshot. Failures are logged
// and reported only through ok.
func (s *DiagnosticsService) Export(ctx context.Context) (SharePayload, bool) {
	p, err := s.export(ctx)
	if err != nil {
		log.Errorf("State log error: %v", err)
		return SharePayload{}, false
	}
	return p, true
}

func (s *DiagnosticsService) export(ctx context.Context) (SharePayload, error) {
	full, err := s.State.FullState(ctx)
	if err != nil {
		return SharePayload{}, fmt.Errorf("read state: %w", err)
	}
	keyrings, err := s.Keyrings.Keyrings(ctx)
	if err != nil {
		return SharePayload{}, fmt.Errorf("read keyrings: %w", err)
	}
	snap, err := BuildSnapshot(full, keyrings)
	if err != nil {
		return SharePayload{}, err
	}
	data, err := jsonAPI.Marshal(snap)
	if err != nil {
		return SharePayload{}, fmt.Errorf("serialize snapshot: %w", err)
	}

	subject := s.App.StateLogSubject()
	p := SharePayload{Subject: subject, Title: subject}
	if s.Inline {
		p.URL = "data:text/plain;base64," + base64.StdEncoding.EncodeToString(data)
	} else {
		path := filepath.Join(s.Dir, s.App.StateLogFileName())
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return SharePayload{}, fmt.Errorf("write state log: %w", err)
		}
		p.URL = path
	}
	if err := s.Sharer.Share(ctx, p); err != nil {
		return SharePayload{}, fmt.Errorf("share: %w", err)
	}
	log.Infof("Exported state log (%d bytes)", len(data))
	return p, nil
}
