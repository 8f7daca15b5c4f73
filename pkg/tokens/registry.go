// Package tokens resolves token symbols and names against the KongSwap
// token registry.
package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ic-swap/pkg/types"
)

// DefaultRegistryURL is the public KongSwap token API.
const DefaultRegistryURL = "https://api.kongswap.io/api/tokens"

// ErrNotFound is returned when no registry record matches a fragment.
var ErrNotFound = fmt.Errorf("token not found")

// Registry fetches token records from the KongSwap token API. Every
// lookup refetches the registry; decimals and fees change between swaps
// and are read on-chain by the engines, never trusted from here.
type Registry struct {
	url    string
	client *http.Client
}

// NewRegistry creates a registry client for the given API endpoint.
func NewRegistry(url string) *Registry {
	if url == "" {
		url = DefaultRegistryURL
	}
	return &Registry{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type registryMetrics struct {
	Price          string  `json:"price"`
	PriceChange24h *string `json:"price_change_24h"`
	MarketCap      string  `json:"market_cap"`
	Volume24h      string  `json:"volume_24h"`
	UpdatedAt      string  `json:"updated_at"`
}

type registryToken struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	CanisterID string          `json:"canister_id"`
	Metrics    registryMetrics `json:"metrics"`
}

type registryResponse struct {
	Items []registryToken `json:"items"`
}

// List returns the current registry snapshot in registry order.
func (r *Registry) List(ctx context.Context) ([]types.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token registry returned status code %d", resp.StatusCode)
	}

	var payload registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode token registry: %w", err)
	}

	items := make([]types.Token, 0, len(payload.Items))
	for _, t := range payload.Items {
		items = append(items, toToken(t))
	}
	return items, nil
}

// Resolve looks up a token by symbol or name fragment. Match precedence:
// exact case-insensitive symbol or name, fragment contained in the name,
// every fragment character present in the symbol, then mutual substring
// between fragment and symbol. First registry record to match wins.
func (r *Registry) Resolve(ctx context.Context, fragment string) (*types.Token, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(fragment))

	for _, t := range items {
		if strings.ToLower(t.Symbol) == term || strings.ToLower(t.Name) == term {
			return &t, nil
		}
	}

	for _, t := range items {
		if matchesLoose(t, term) {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, fragment)
}

// Price returns the registry's market metrics for an exact symbol.
func (r *Registry) Price(ctx context.Context, symbol string) (*types.Token, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range items {
		if strings.EqualFold(t.Symbol, symbol) {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, symbol)
}

func matchesLoose(t types.Token, term string) bool {
	symbol := strings.ToLower(t.Symbol)
	name := strings.ToLower(t.Name)

	if strings.Contains(name, term) {
		return true
	}
	// character-subset test against the symbol, order does not matter
	if term != "" && containsAllChars(symbol, term) {
		return true
	}
	return strings.Contains(symbol, term) || strings.Contains(term, symbol)
}

func containsAllChars(symbol, term string) bool {
	for _, c := range term {
		if !strings.ContainsRune(symbol, c) {
			return false
		}
	}
	return true
}

func toToken(t registryToken) types.Token {
	change := "0"
	if t.Metrics.PriceChange24h != nil {
		change = *t.Metrics.PriceChange24h
	}
	return types.Token{
		Symbol:     t.Symbol,
		Name:       t.Name,
		CanisterID: t.CanisterID,
		Metrics: types.TokenMetrics{
			Price:          t.Metrics.Price,
			PriceChange24h: change,
			MarketCap:      t.Metrics.MarketCap,
			Volume24h:      t.Metrics.Volume24h,
			UpdatedAt:      t.Metrics.UpdatedAt,
		},
	}
}
