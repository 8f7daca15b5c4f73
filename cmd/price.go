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
)

var priceCmd = &cobra.Command{
	Use:   "price <symbol>",
	Short: "Show a token's market metrics",
	Long: `Show the registry's market metrics for a token: USD price, 24h change,
market cap, and 24h volume.

Examples:
  ic-swap price ICP
  ic-swap price ckBTC --json`,
	Args: cobra.ExactArgs(1),
	Run:  runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	registry := tokens.NewRegistry(cfg.RegistryURL)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching price..."
		s.Start()
	}

	token, err := registry.Price(context.Background(), args[0])
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(token, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("  %s (%s)", token.Name, token.Symbol)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  Price:        $%s\n", color.CyanString(token.Metrics.Price))
	fmt.Printf("  24h Change:   %s%%\n", token.Metrics.PriceChange24h)
	fmt.Printf("  Market Cap:   $%s\n", token.Metrics.MarketCap)
	fmt.Printf("  24h Volume:   $%s\n", token.Metrics.Volume24h)
	fmt.Printf("  Updated:      %s\n", color.HiBlackString(token.Metrics.UpdatedAt))
	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
