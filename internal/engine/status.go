package engine

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Network status values.
const (
	StatusOK      = "ok"
	StatusDown    = "down"
	StatusUnknown = "unknown"
)

// NetworkStatusController records whether the active network answers
// JSON-RPC requests.
type NetworkStatusController struct {
	client    *http.Client
	network   *NetworkController
	endpoints map[string]string

	mu       sync.Mutex
	statuses map[string]string
}

// NewNetworkStatusController probes endpoints[providerType] for built-in
// networks and the RPC target for custom ones.
func NewNetworkStatusController(client *http.Client, network *NetworkController, endpoints map[string]string) *NetworkStatusController {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &NetworkStatusController{
		client:    client,
		network:   network,
		endpoints: endpoints,
		statuses:  make(map[string]string),
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Check probes the active network and records its status.
func (n *NetworkStatusController) Check(ctx context.Context) (string, error) {
	p, err := n.network.Provider(ctx)
	if err != nil {
		return "", err
	}
	endpoint := n.endpoints[p.Type]
	if p.Type == RPC {
		endpoint = p.RPCTarget
	}
	status := StatusUnknown
	if endpoint != "" {
		status = StatusOK
		if err := n.ping(ctx, endpoint); err != nil {
			log.Warnf("Network %s unreachable: %v", p.Type, err)
			status = StatusDown
		}
	}
	n.mu.Lock()
	n.statuses[p.Type] = status
	n.mu.Unlock()
	return status, nil
}

func (n *NetworkStatusController) ping(ctx context.Context, endpoint string) error {
	body, err := jsonAPI.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: "net_version", Params: []interface{}{}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	var r rpcResponse
	if err := jsonAPI.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if r.Error != nil {
		return fmt.Errorf("rpc error %d: %s", r.Error.Code, r.Error.Message)
	}
	return nil
}

func (n *NetworkStatusController) State() NetworkStatusState {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]string, len(Networks))
	for typ := range Networks {
		out[typ] = StatusUnknown
	}
	for typ, s := range n.statuses {
		out[typ] = s
	}
	return NetworkStatusState{NetworkStatus: out}
}
