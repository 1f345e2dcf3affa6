package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spacequiz/internal/llm"
	"github.com/abhisek/spacequiz/internal/quiz"
	"github.com/abhisek/spacequiz/internal/quizgen"
	"github.com/abhisek/spacequiz/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one batch of questions without the HTTP server",
	Long: `Build the prompt for a difficulty, run it through the primary and fallback
models and print the normalized batch. Useful for checking question quality
and provider configuration.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("difficulty", "d", "easy", "Difficulty: easy, medium or hard")
	generateCmd.Flags().String("model", "", "Override the primary model")
	generateCmd.Flags().Bool("json", false, "Print the batch as the endpoint's JSON body")
	generateCmd.Flags().Bool("no-ledger", false, "Do not record upstream calls in the usage ledger")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	diffVal, _ := cmd.Flags().GetString("difficulty")
	model, _ := cmd.Flags().GetString("model")
	asJSON, _ := cmd.Flags().GetBool("json")
	noLedger, _ := cmd.Flags().GetBool("no-ledger")

	if err := loadEnvFile(".env"); err != nil {
		return err
	}
	cfg, err := llm.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("llm config: %w", err)
	}

	var eventRepo store.EventRepo
	if !noLedger {
		st, err := openLedger(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Usage ledger unavailable:", err)
		} else {
			defer st.Close()
			eventRepo = st.EventRepo()
		}
	}

	ctx := cmd.Context()
	cascade, err := llm.NewCascadeFromConfig(ctx, cfg, eventRepo)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	d := quiz.ParseDifficulty(diffVal)
	if !asJSON {
		fmt.Printf("Generating %s questions with %s (fallback %s)...\n\n", d, cascade.ModelID(), cascade.FallbackModelID())
	}

	res, err := quizgen.New(cascade).Generate(ctx, quizgen.GenerateInput{Difficulty: d, Model: model})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Questions quiz.Batch `json:"questions"`
			ModelUsed string     `json:"modelUsed,omitempty"`
		}{Questions: nonNilBatch(res.Batch), ModelUsed: res.ModelUsed})
	}

	printBatch(res)
	return nil
}

func nonNilBatch(b quiz.Batch) quiz.Batch {
	if b == nil {
		return quiz.Batch{}
	}
	return b
}

func printBatch(res *quizgen.Result) {
	if res.Batch.Len() == 0 {
		fmt.Println("The model returned no usable questions.")
		return
	}

	letters := []string{"A", "B", "C", "D"}
	for i, q := range res.Batch {
		fmt.Printf("%d. %s\n", i+1, q.Question)
		for k, opt := range q.Options {
			marker := " "
			if q.IsCorrect(k) {
				marker = "*"
			}
			fmt.Printf("   %s %s) %s\n", marker, letters[k], opt)
		}
		if q.Explanation != "" {
			fmt.Printf("   %s\n", q.Explanation)
		}
		fmt.Println()
	}
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("%d questions from %s\n", res.Batch.Len(), res.ModelUsed)
}
