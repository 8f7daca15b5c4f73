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
	"ic-swap/pkg/swap"
	"ic-swap/pkg/tokens"
)

var withdrawCmd = &cobra.Command{
	Use:     "resume-withdraw <from-token> <to-token>",
	Aliases: []string{"withdraw"},
	Short:   "Recover proceeds stranded in an ICPSwap pool",
	Long: `Withdraw any unused balance left in an ICPSwap pool by a swap that
failed after its deposit phase. The pair identifies the pool; the
proceeds of a failed <from> to <to> swap sit on the <to> side.

If the swap failed before trading, the stranded funds are on the <from>
side instead; recover them by swapping the arguments.

Examples:
  ic-swap resume-withdraw CHAT ICP`,
	Args: cobra.ExactArgs(2),
	Run:  runResumeWithdraw,
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
}

func runResumeWithdraw(cmd *cobra.Command, args []string) {
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
	var progress swap.ProgressFunc
	if !jsonOutput {
		s.Suffix = " Checking pool balance..."
		s.Start()
		progress = func(msg string) {
			s.Suffix = " " + msg
		}
	}
	fail := func(err error) {
		if !jsonOutput {
			s.Stop()
		}
		printError(err)
		os.Exit(1)
	}

	registry := tokens.NewRegistry(cfg.RegistryURL)
	from, err := registry.Resolve(ctx, args[0])
	if err != nil {
		fail(err)
	}
	to, err := registry.Resolve(ctx, args[1])
	if err != nil {
		fail(err)
	}

	engine := swap.NewICPSwapEngine(client, cfg.ICPSwapFactoryID, progress)
	receipt, err := engine.ResumeWithdraw(ctx, from, to)
	if err != nil {
		fail(err)
	}

	if !jsonOutput {
		s.Stop()
	}

	if jsonOutput {
		output := map[string]interface{}{
			"platform":             receipt.Platform,
			"token":                to.Symbol,
			"to_amount_base_units": receipt.ToAmount.String(),
			"status":               "withdrawn",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	color.Green("\n✓ Withdrawal complete")
	fmt.Printf("  Recovered: %s %s (base units)\n\n", receipt.ToAmount, color.YellowString(to.Symbol))
}
