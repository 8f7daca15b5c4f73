package cmd

import (
	"bufio"
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
	"ic-swap/pkg/parser"
	"ic-swap/pkg/swap"
	"ic-swap/pkg/types"
)

var (
	platformFlag string
	noConfirm    bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <from-token> to <to-token>",
	Short: "Swap tokens on a decentralized exchange",
	Long: `Swap ICRC tokens on the Internet Computer through KongSwap or ICPSwap.

IMPORTANT:
  - You MUST specify a platform, either inline ("on kongswap") or with --platform
  - A signing identity is required; set IC_SWAP_IDENTITY_PEM_PATH or add
    identity_pem_path to your .ic-swap.yaml

Examples:
  # Swap on KongSwap
  ic-swap swap 100 CHAT to ICP --platform kongswap

  # Platform inline in the command
  ic-swap swap 1.5 ICP to ckBTC on icpswap

  # Skip the confirmation prompt
  ic-swap swap 100 CHAT to ICP --platform kongswap --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVarP(&platformFlag, "platform", "p", "", "Swap venue: kongswap or icpswap")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
	// Parse the command
	commandStr := strings.Join(args, " ")
	swapReq, err := parser.ParseSwapCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// The flag wins over an inline "on <platform>" clause
	if platformFlag != "" {
		swapReq.Platform = types.Platform(strings.ToLower(platformFlag))
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Load configuration
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

	// Ask for confirmation
	if !noConfirm && !jsonOutput {
		if !confirmSwap(swapReq) {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	// Run the swap with a spinner tracking the engine's progress
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	var progress swap.ProgressFunc
	if !jsonOutput {
		s.Suffix = " Preparing swap..."
		s.Start()
		progress = func(msg string) {
			s.Suffix = " " + msg
		}
	}

	dispatcher := newDispatcher(cfg, client, progress)
	receipt, err := dispatcher.Execute(context.Background(), swapReq)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"platform":   receipt.Platform,
			"from_token": swapReq.FromToken,
			"to_token":   swapReq.ToToken,
			"status":     "completed",
		}
		if receipt.TxID != "" {
			output["tx_id"] = receipt.TxID
		}
		if receipt.FromAmount != nil {
			output["from_amount_base_units"] = receipt.FromAmount.String()
		}
		if receipt.ToAmount != nil {
			output["to_amount_base_units"] = receipt.ToAmount.String()
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayReceipt(receipt, swapReq)
	}
}

func displayReceipt(receipt *types.SwapReceipt, swapReq *types.SwapRequest) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                   SWAP COMPLETED")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Platform:          %s\n", color.CyanString(string(receipt.Platform)))
	if receipt.TxID != "" {
		fmt.Printf("  Transaction ID:    %s\n", color.CyanString(receipt.TxID))
	}
	if receipt.FromAmount != nil {
		fmt.Printf("  Paid:              %s %s (base units)\n", receipt.FromAmount, color.YellowString(swapReq.FromToken))
	}
	if receipt.ToAmount != nil {
		fmt.Printf("  Received:          %s %s (base units)\n", receipt.ToAmount, color.YellowString(swapReq.ToToken))
	}
	if receipt.Price != 0 {
		fmt.Printf("  Price:             %f\n", receipt.Price)
		fmt.Printf("  Slippage:          %.2f%%\n", receipt.SlippagePercent)
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func confirmSwap(req *types.SwapRequest) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\nSwap %s %s for %s on %s? (y/N): ", req.Amount, req.FromToken, req.ToToken, req.Platform)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
