package service

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	// GatewayTestHash is content every healthy gateway serves.
	GatewayTestHash = "Qmaisz6NMhDB51cCvNWa1GMS7LU1pAxdF4Ld6Ft9kZEP2a"
	// GatewayTestBody is the content behind GatewayTestHash.
	GatewayTestBody = "Hello from IPFS Gateway Checker"

	noRedirectMarker    = "#x-ipfs-companion-no-redirect"
	defaultProbeTimeout = 10 * time.Second
	maxProbeBody        = 1 << 10
)

//go:embed gateways.yaml
var defaultGatewaysYAML []byte

// GatewayCandidate is one IPFS gateway offered to the user.
type GatewayCandidate struct {
	Key       string `yaml:"key"`
	Label     string `yaml:"label"`
	URL       string `yaml:"value"`
	Reachable bool   `yaml:"-"`
}

// DefaultGateways returns the built-in gateway list.
func DefaultGateways() ([]GatewayCandidate, error) {
	return parseGateways(defaultGatewaysYAML)
}

// LoadGateways reads a gateway list file, or the built-in list when path
// is empty.
func LoadGateways(path string) ([]GatewayCandidate, error) {
	if path == "" {
		return DefaultGateways()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gateways file: %w", err)
	}
	return parseGateways(data)
}

func parseGateways(data []byte) ([]GatewayCandidate, error) {
	var list []GatewayCandidate
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse gateways: %w", err)
	}
	for i, g := range list {
		if g.Key == "" || g.URL == "" {
			return nil, fmt.Errorf("gateway %d: key and value are required", i)
		}
	}
	return list, nil
}

// GatewayProber checks which gateways serve the test content.
type GatewayProber struct {
	Client  *http.Client
	Timeout time.Duration
}

// Probe checks every candidate concurrently and waits for all of them. It
// returns the reachable candidates sorted by key. A failed probe only marks
// its candidate unreachable.
func (p *GatewayProber) Probe(ctx context.Context, candidates []GatewayCandidate) []GatewayCandidate {
	results := make([]GatewayCandidate, len(candidates))
	var g errgroup.Group
	for i, c := range candidates {
		g.Go(func() error {
			c.Reachable = p.probeOne(ctx, c)
			results[i] = c
			return nil
		})
	}
	_ = g.Wait()

	online := make([]GatewayCandidate, 0, len(results))
	for _, c := range results {
		if c.Reachable {
			online = append(online, c)
		}
	}
	sort.SliceStable(online, func(i, j int) bool { return online[i].Key < online[j].Key })
	log.Debugf("%d of %d gateways reachable", len(online), len(candidates))
	return online
}

func (p *GatewayProber) probeOne(ctx context.Context, c GatewayCandidate) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+GatewayTestHash+noRedirectMarker, nil)
	if err != nil {
		log.Debugf("Gateway %s: %v", c.Key, err)
		return false
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Debugf("Gateway %s unreachable: %v", c.Key, err)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		log.Debugf("Gateway %s read: %v", c.Key, err)
		return false
	}
	return strings.TrimSpace(string(body)) == GatewayTestBody
}
