package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProbeGateways(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/"+GatewayTestHash) {
			http.NotFound(w, r)
			return
		}
		switch strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")[0] {
		case "good", "good2", "padded":
			body := GatewayTestBody
			if strings.HasPrefix(r.URL.Path, "/padded") {
				body = "\n  " + body + "\n"
			}
			_, _ = io.WriteString(w, body)
		case "wrong":
			_, _ = io.WriteString(w, "Hello from somewhere else")
		case "error":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "slow":
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}
	}))
	defer srv.Close()

	candidates := []GatewayCandidate{
		{Key: "zeta", URL: srv.URL + "/good/"},
		{Key: "mid", URL: srv.URL + "/wrong/"},
		{Key: "alpha", URL: srv.URL + "/good2/"},
		{Key: "beta", URL: srv.URL + "/error/"},
		{Key: "gamma", URL: srv.URL + "/slow/"},
		{Key: "kappa", URL: srv.URL + "/padded/"},
		{Key: "omega", URL: "http://127.0.0.1:1/"},
	}
	p := &GatewayProber{Client: srv.Client(), Timeout: 300 * time.Millisecond}

	start := time.Now()
	online := p.Probe(context.Background(), candidates)
	require.Less(t, time.Since(start), 4*time.Second)

	keys := make([]string, 0, len(online))
	for _, g := range online {
		require.True(t, g.Reachable)
		keys = append(keys, g.Key)
	}
	require.Equal(t, []string{"alpha", "kappa", "zeta"}, keys)
}

func TestProbeGatewaysEmpty(t *testing.T) {
	t.Parallel()
	p := &GatewayProber{}
	require.Empty(t, p.Probe(context.Background(), nil))
}

func TestLoadGateways(t *testing.T) {
	t.Parallel()

	builtin, err := DefaultGateways()
	require.NoError(t, err)
	require.NotEmpty(t, builtin)
	for _, g := range builtin {
		require.True(t, strings.HasSuffix(g.URL, "/ipfs/"), g.URL)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "gateways.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- key: local\n  label: Local\n  value: http://127.0.0.1:8080/ipfs/\n"), 0o600))
	list, err := LoadGateways(path)
	require.NoError(t, err)
	require.Equal(t, []GatewayCandidate{{Key: "local", Label: "Local", URL: "http://127.0.0.1:8080/ipfs/"}}, list)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- label: missing key\n"), 0o600))
	_, err = LoadGateways(bad)
	require.Error(t, err)

	_, err = LoadGateways(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
