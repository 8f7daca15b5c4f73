package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ic-swap/config"
	"ic-swap/pkg/amount"
	"ic-swap/pkg/icrc"
	"ic-swap/pkg/tokens"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <token>",
	Short: "Show your ledger balance for a token",
	Long: `Show the configured identity's balance on a token's ledger. With no
identity configured the balance of the anonymous principal is shown,
which is almost certainly zero.

Examples:
  ic-swap balance ICP
  ic-swap balance ckBTC --json`,
	Args: cobra.ExactArgs(1),
	Run:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	client, err := newAgentClient(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Reading balance..."
		s.Start()
	}
	fail := func(err error) {
		if !jsonOutput {
			s.Stop()
		}
		printError(err)
		os.Exit(1)
	}

	registry := tokens.NewRegistry(cfg.RegistryURL)
	token, err := registry.Resolve(ctx, args[0])
	if err != nil {
		fail(err)
	}

	ledger := icrc.NewLedger(client, token.CanisterID)
	owner := client.Caller()

	balance, err := ledger.BalanceOf(ctx, owner)
	if err != nil {
		fail(err)
	}
	decimals, err := ledger.Decimals(ctx)
	if err != nil {
		fail(err)
	}

	if !jsonOutput {
		s.Stop()
	}
	formatted := amount.FromBaseUnits(balance, decimals).String()

	if jsonOutput {
		output := map[string]interface{}{
			"token":              token.Symbol,
			"canister_id":        token.CanisterID,
			"owner":              owner.String(),
			"balance":            formatted,
			"balance_base_units": balance.String(),
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\n  %s %s\n", color.CyanString(formatted), color.YellowString(token.Symbol))
	fmt.Printf("  %s base units\n", balance)
	fmt.Printf("  Account: %s\n\n", color.HiBlackString(owner.String()))
}
