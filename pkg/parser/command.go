package parser

import (
	"fmt"
	"regexp"
	"strings"

	"ic-swap/pkg/types"
)

// Pattern: <amount> <from_token> TO <to_token> [ON|VIA|USING <platform>]
// Matches: "1 ICP TO CHAT", "1.5 CKBTC TO ICP ON KONGSWAP"
var swapPattern = regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9_.-]+)\s+TO\s+([A-Z0-9_.-]+)(?:\s+(?:ON|VIA|USING)\s+([A-Z]+))?$`)

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 1 ICP to CHAT on kongswap"
//   - "1.5 ckBTC to ICP via icpswap"
//   - "100 CHAT to ICP"
func ParseSwapCommand(command string) (*types.SwapRequest, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))

	// Remove the word "SWAP" if present at the beginning
	command = strings.TrimPrefix(command, "SWAP ")

	matches := swapPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: 'swap <amount> <token> to <token> [on <platform>]' (e.g., 'swap 1 ICP to CHAT on kongswap')")
	}

	return &types.SwapRequest{
		Amount:    matches[1],
		FromToken: matches[2],
		ToToken:   matches[3],
		Platform:  types.Platform(strings.ToLower(matches[4])),
	}, nil
}

// ValidateSwapRequest validates that a swap request has all required fields
func ValidateSwapRequest(req *types.SwapRequest) error {
	if req.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if req.FromToken == "" {
		return fmt.Errorf("source token is required")
	}
	if req.ToToken == "" {
		return fmt.Errorf("destination token is required")
	}
	return nil
}
