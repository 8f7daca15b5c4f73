package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ic-swap/config"
	"ic-swap/pkg/tokens"
	"ic-swap/pkg/types"
)

var filterSymbol string

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens", "ls"},
	Short:   "List all tokens in the swap registry",
	Long: `List every token known to the KongSwap token registry.

You can filter tokens by symbol.

Examples:
  ic-swap list-tokens
  ic-swap list-tokens --symbol ck`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	registry := tokens.NewRegistry(cfg.RegistryURL)

	// Get tokens with spinner
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching token registry..."
		s.Start()
	}

	items, err := registry.List(context.Background())
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Apply filters
	if filterSymbol != "" {
		var temp []types.Token
		for _, token := range items {
			if strings.Contains(strings.ToUpper(token.Symbol), strings.ToUpper(filterSymbol)) {
				temp = append(temp, token)
			}
		}
		items = temp
	}

	// Output
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(items, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayTokens(items)
	}
}

func displayTokens(items []types.Token) {
	if len(items) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	color.Green("                            REGISTRY TOKENS")
	fmt.Println(strings.Repeat("=", 90))
	fmt.Println()

	for _, token := range items {
		price := token.Metrics.Price
		if price == "" {
			price = "-"
		}
		fmt.Printf("  %-10s  %-30s  $%-14s  %s\n",
			color.YellowString(token.Symbol),
			token.Name,
			price,
			color.HiBlackString(token.CanisterID))
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	fmt.Printf("\nTotal: %d tokens\n\n", len(items))
}
