package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/abhisek/spacequiz/internal/llm"
	"github.com/abhisek/spacequiz/internal/store"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the usage ledger of upstream model calls",
	Long: `The usage ledger records one row per upstream call made by serve or
generate: provider, model, tokens, latency and outcome. Prompts and
generated questions are never stored.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent upstream calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")
		opts.Provider, _ = cmd.Flags().GetString("provider")
		opts.FailedOnly, _ = cmd.Flags().GetBool("failed")

		ledger, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer ledger.Close()

		events, err := ledger.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		return printEvents(cmd.OutOrStdout(), events)
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one upstream call in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		ledger, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer ledger.Close()

		e, err := ledger.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		return printEvent(cmd.OutOrStdout(), e)
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage, failure counts and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer ledger.Close()

		repo := ledger.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		return printUsage(cmd.OutOrStdout(), byPurpose, byModel)
	},
}

func printEvents(out io.Writer, events []store.LLMRequestEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(out, "No upstream calls recorded.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPROVIDER\tMODEL\tPURPOSE\tIN\tOUT\tMS\tOK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), e.Provider, truncate(e.Model, 28),
			e.Purpose, e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
	}
	return w.Flush()
}

func printEvent(out io.Writer, e *store.LLMRequestEvent) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(w, "%s:\t%s\n", k, v)
		}
	}
	row("ID", strconv.FormatInt(e.ID, 10))
	row("Time", e.Timestamp.Local().Format(timeLayout))
	row("Provider", e.Provider)
	row("Model", e.Model)
	row("Purpose", e.Purpose)
	row("Request", e.RequestID)
	row("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	row("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	row("Success", strconv.FormatBool(e.Success))
	row("Stop", e.StopReason)
	row("Error", e.ErrorMessage)
	if cost := llm.LookupCost(e.Model); cost != nil {
		row("Cost", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
	}
	return w.Flush()
}

func printUsage(out io.Writer, byPurpose []store.LLMUsageByPurpose, byModel []store.LLMUsageByModel) error {
	if len(byPurpose) == 0 {
		_, err := fmt.Fprintln(out, "No upstream calls recorded.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "PURPOSE\tCALLS\tFAILED\tINPUT\tOUTPUT\tAVG MS\t")
	var calls, failed, in, outTok int
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t\n",
			u.Purpose, u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		failed += u.Failures
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\t%d\t\t\n", calls, failed, in, outTok)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(byModel) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "MODEL\tCALLS\tINPUT\tOUTPUT\tCOST (USD)\t")
	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t\n", truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%s\t\t\t\t%s\t\n", label, formatCost(total))
	if err := w.Flush(); err != nil {
		return err
	}

	if len(unpriced) > 0 {
		_, err := fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		return err
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls with this purpose (e.g. quiz-batch)")
	llmListCmd.Flags().String("provider", "", "Only calls to this provider (Gemini, OpenAI, OpenRouter, Anthropic)")
	llmListCmd.Flags().Bool("failed", false, "Only failed calls")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
