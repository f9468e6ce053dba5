package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/propascan/propascan/internal/model"
	"github.com/propascan/propascan/internal/pipeline"
	"github.com/propascan/propascan/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveNoCache  bool
	serveNoRobots bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	Long: `Serve exposes the analysis pipeline over HTTP for the browser
extension and other clients:

  GET  /         health check
  POST /analyze  {"url": "...", "content": "..."} -> propaganda report

The server shuts down gracefully on SIGINT or SIGTERM.

Example:
  propascan serve
  propascan serve --addr :8080
  propascan serve --ai --ai-provider openai`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":5000", "listen address")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable extraction cache")
	serveCmd.Flags().BoolVar(&serveNoRobots, "no-robots", false, "skip robots.txt checks")

	// AI flags
	serveCmd.Flags().BoolVar(&aiEnabled, "ai", false, "enable AI scoring")
	serveCmd.Flags().StringVar(&aiProvider, "ai-provider", "openai", "AI provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&aiModel, "ai-model", "", "AI model name (provider default when empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Server.Addr = serveAddr
	cfg.Cache.Enabled = !serveNoCache
	cfg.HTTP.RespectRobots = !serveNoRobots

	if err := configureAI(cfg); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
		if aiEnabled {
			fmt.Fprintf(os.Stderr, "AI scoring: %s\n", aiProvider)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, p).Run(ctx)
}
