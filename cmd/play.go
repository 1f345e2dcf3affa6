package cmd

import (
	"os"

	"github.com/abhisek/spacequiz/internal/app"
	"github.com/abhisek/spacequiz/internal/session"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8788"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quiz in the terminal against a running server",
	RunE:  runPlay,
}

func init() {
	registerPlayFlags(playCmd)
}

func registerPlayFlags(cmd *cobra.Command) {
	server := os.Getenv("SPACEQUIZ_SERVER")
	if server == "" {
		server = defaultServerURL
	}
	cmd.Flags().String("server", server, "Base URL of the quiz server (SPACEQUIZ_SERVER)")
	cmd.Flags().String("model", "", "Override the server's primary model")
	cmd.Flags().Duration("timeout", session.DefaultClientTimeout, "Timeout for one batch request")
}

func runPlay(cmd *cobra.Command, args []string) error {
	server, _ := cmd.Flags().GetString("server")
	model, _ := cmd.Flags().GetString("model")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := session.NewClient(server, timeout)
	client.Model = model

	return app.Run(client, server)
}
