package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/spacequiz/internal/endpoint"
	"github.com/abhisek/spacequiz/internal/llm"
	"github.com/abhisek/spacequiz/internal/quizgen"
	"github.com/abhisek/spacequiz/internal/store"
	"github.com/abhisek/spacequiz/internal/telemetry"
)

const (
	serviceName = "spacequiz"
	defaultAddr = ":8788"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz generation endpoint",
	Long: `Serve GET /api/generate-quiz. Upstream providers, models and credentials
are read from the environment; an optional .env file is loaded first.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "Listen address (overrides SPACEQUIZ_ADDR env var)")
	serveCmd.Flags().String("env-file", ".env", "Optional dotenv file to load before reading configuration")
	serveCmd.Flags().Bool("no-ledger", false, "Do not record upstream calls in the usage ledger")
}

func runServe(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	addr, _ := cmd.Flags().GetString("addr")
	noLedger, _ := cmd.Flags().GetBool("no-ledger")

	if err := loadEnvFile(envFile); err != nil {
		return err
	}
	if v := os.Getenv("SPACEQUIZ_ADDR"); v != "" && !cmd.Flags().Changed("addr") {
		addr = v
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelCfg, err := telemetry.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("telemetry config: %w", err)
	}
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, otelCfg)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

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

	handler, err := buildHandler(ctx, cfg, eventRepo)
	if err != nil {
		return err
	}

	log.Printf("listening on %s (provider %s)", addr, cfg.Provider)
	return endpoint.ListenAndServe(ctx, endpoint.ServerConfig{
		Addr:            addr,
		UpstreamTimeout: cfg.Timeout,
	}, handler)
}

// buildHandler wires the cascade into the endpoint. A missing credential
// does not stop the server: every request answers 500 naming it.
func buildHandler(ctx context.Context, cfg llm.Config, eventRepo store.EventRepo) (*endpoint.Handler, error) {
	cascade, err := llm.NewCascadeFromConfig(ctx, cfg, eventRepo)
	if err != nil {
		var cfgErr *llm.ErrConfiguration
		if errors.As(err, &cfgErr) {
			log.Printf("%v; requests will fail until it is set", err)
			return endpoint.NewMisconfiguredHandler(err), nil
		}
		return nil, fmt.Errorf("build generation cascade: %w", err)
	}
	return endpoint.NewHandler(quizgen.New(cascade)), nil
}

// loadEnvFile loads path into the environment if it exists. Variables
// already set win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func openLedger(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
