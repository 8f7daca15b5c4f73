package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ic-swap/pkg/types"
)

func TestParseSwapCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    *types.SwapRequest
	}{
		{
			name:    "full command with platform",
			command: "swap 100 CHAT to ICP on kongswap",
			want:    &types.SwapRequest{Amount: "100", FromToken: "CHAT", ToToken: "ICP", Platform: types.PlatformKongSwap},
		},
		{
			name:    "via keyword",
			command: "1.5 ckBTC to ICP via icpswap",
			want:    &types.SwapRequest{Amount: "1.5", FromToken: "CKBTC", ToToken: "ICP", Platform: types.PlatformICPSwap},
		},
		{
			name:    "using keyword",
			command: "swap 0.25 ICP to CHAT using kongswap",
			want:    &types.SwapRequest{Amount: "0.25", FromToken: "ICP", ToToken: "CHAT", Platform: types.PlatformKongSwap},
		},
		{
			name:    "no platform",
			command: "100 CHAT to ICP",
			want:    &types.SwapRequest{Amount: "100", FromToken: "CHAT", ToToken: "ICP"},
		},
		{
			name:    "extra whitespace",
			command: "  swap 1 ICP to CHAT  ",
			want:    &types.SwapRequest{Amount: "1", FromToken: "ICP", ToToken: "CHAT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSwapCommand(tt.command)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSwapCommandRejectsMalformedInput(t *testing.T) {
	for _, command := range []string{
		"",
		"swap",
		"swap CHAT to ICP",
		"swap 100 CHAT ICP",
		"swap 100 CHAT to ICP on",
	} {
		_, err := ParseSwapCommand(command)
		assert.Error(t, err, "command %q", command)
	}
}

func TestValidateSwapRequest(t *testing.T) {
	assert.NoError(t, ValidateSwapRequest(&types.SwapRequest{Amount: "1", FromToken: "ICP", ToToken: "CHAT"}))
	assert.Error(t, ValidateSwapRequest(&types.SwapRequest{FromToken: "ICP", ToToken: "CHAT"}))
	assert.Error(t, ValidateSwapRequest(&types.SwapRequest{Amount: "1", ToToken: "CHAT"}))
	assert.Error(t, ValidateSwapRequest(&types.SwapRequest{Amount: "1", FromToken: "ICP"}))
}
