package platform

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/service"
)

func TestShareDataURI(t *testing.T) {
	dir := t.TempDir()
	f := &FileSharer{Dir: dir}
	payload := service.SharePayload{
		URL:     dataURIPrefix + base64.StdEncoding.EncodeToString([]byte(`{"a":1}`)),
		Subject: "JaskWallet State logs -  v1.0 (7)",
		Title:   "JaskWallet State logs -  v1.0 (7)",
	}
	require.NoError(t, f.Share(context.Background(), payload))

	data, err := os.ReadFile(filepath.Join(dir, "JaskWallet_State_logs_-__v1.0_(7).json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(data))
}

func TestShareFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	f := &FileSharer{Dir: dir}
	require.NoError(t, f.Share(context.Background(), service.SharePayload{URL: path}))
	require.Error(t, f.Share(context.Background(), service.SharePayload{URL: filepath.Join(dir, "missing.json")}))
	require.Error(t, f.Share(context.Background(), service.SharePayload{}))
	require.Error(t, f.Share(context.Background(), service.SharePayload{URL: dataURIPrefix + "!!!"}))
}
