package canister

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/aviate-labs/agent-go"
	"github.com/aviate-labs/agent-go/identity"
	"github.com/aviate-labs/agent-go/principal"
)

// AgentConfig describes how to construct an IC agent.
type AgentConfig struct {
	// Host is the IC HTTP gateway, e.g. https://icp-api.io
	Host string
	// IdentityPEM is an optional path to an Ed25519 identity key. When
	// empty the agent signs as the anonymous principal, which is enough
	// for read-only commands but will be rejected by write calls.
	IdentityPEM string
	// FetchRootKey must only be set when talking to a local replica.
	FetchRootKey bool
}

// AgentClient implements Client on top of the aviate-labs IC agent.
type AgentClient struct {
	agent *agent.Agent
}

// NewAgentClient dials the configured IC gateway and returns a ready client.
func NewAgentClient(cfg AgentConfig) (*AgentClient, error) {
	host, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid IC host %q: %w", cfg.Host, err)
	}

	var id identity.Identity = new(identity.AnonymousIdentity)
	if cfg.IdentityPEM != "" {
		data, err := os.ReadFile(cfg.IdentityPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to read identity key: %w", err)
		}
		ed, err := identity.NewEd25519IdentityFromPEM(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse identity key: %w", err)
		}
		id = ed
	}

	a, err := agent.New(agent.Config{
		Identity:     id,
		ClientConfig: []agent.ClientOption{agent.WithHostURL(host)},
		FetchRootKey: cfg.FetchRootKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create IC agent: %w", err)
	}

	return &AgentClient{agent: a}, nil
}

// Query performs a read-only call against the canister.
func (c *AgentClient) Query(_ context.Context, canisterID, method string, args []any, out []any) error {
	p, err := principal.Decode(canisterID)
	if err != nil {
		return fmt.Errorf("invalid canister ID %q: %w", canisterID, err)
	}
	return c.agent.Query(p, method, args, out)
}

// Call performs an update call and waits for the certified response.
func (c *AgentClient) Call(_ context.Context, canisterID, method string, args []any, out []any) error {
	p, err := principal.Decode(canisterID)
	if err != nil {
		return fmt.Errorf("invalid canister ID %q: %w", canisterID, err)
	}
	return c.agent.Call(p, method, args, out)
}

// Caller returns the principal of the configured identity.
func (c *AgentClient) Caller() principal.Principal {
	return c.agent.Sender()
}
