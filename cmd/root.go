package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ic-swap/config"
	"ic-swap/pkg/canister"
	"ic-swap/pkg/swap"
	"ic-swap/pkg/tokens"
	"ic-swap/pkg/types"
)

var rootCmd = &cobra.Command{
	Use:   "ic-swap",
	Short: "A CLI for token swaps on the Internet Computer",
	Long: `ic-swap is a command-line tool for swapping ICRC tokens on the Internet
Computer through the KongSwap and ICPSwap venues. Specify what you want to
swap and which venue to use; the tool handles approvals, deposits, and
withdrawals for you.

Examples:
  ic-swap swap 100 CHAT to ICP --platform kongswap
  ic-swap swap 1.5 ICP to ckBTC --platform icpswap
  ic-swap list-tokens
  ic-swap price ICP
  ic-swap balance ICP`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

// newAgentClient builds the IC client from the loaded configuration.
func newAgentClient(cfg *config.Config) (*canister.AgentClient, error) {
	return canister.NewAgentClient(canister.AgentConfig{
		Host:         cfg.ICHost,
		IdentityPEM:  cfg.IdentityPEMPath,
		FetchRootKey: cfg.FetchRootKey,
	})
}

// newDispatcher wires the token registry and both venue engines.
func newDispatcher(cfg *config.Config, client canister.Client, progress swap.ProgressFunc) *swap.Dispatcher {
	registry := tokens.NewRegistry(cfg.RegistryURL)
	return swap.NewDispatcher(registry, map[types.Platform]swap.Engine{
		types.PlatformKongSwap: swap.NewKongSwapEngine(client, cfg.KongSwapCanisterID, progress),
		types.PlatformICPSwap:  swap.NewICPSwapEngine(client, cfg.ICPSwapFactoryID, progress),
	})
}
