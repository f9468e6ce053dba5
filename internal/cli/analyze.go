package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/propascan/propascan/internal/model"
	"github.com/propascan/propascan/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	directText  string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noRobots    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	aiEnabled   bool
	aiProvider  string
	aiModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze one article and print the propaganda report as JSON",
	Long: `Analyze runs the full scoring flow for a single article:
- Fetch and extract the main article text (or take text via --text)
- Scan for propaganda-indicator patterns with surrounding context
- Optionally obtain an AI assessment and fuse the two scores
- Print the explainable report as JSON on stdout

Example:
  propascan analyze https://example.com/article
  propascan analyze --text "Article body to score directly"
  propascan analyze https://example.com/article --ai --ai-provider openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&directText, "text", "", "analyze this text directly instead of fetching a URL")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Propascan/0.1 (+https://github.com/propascan/propascan)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// AI flags
	analyzeCmd.Flags().BoolVar(&aiEnabled, "ai", false, "enable AI scoring")
	analyzeCmd.Flags().StringVar(&aiProvider, "ai-provider", "openai", "AI provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&aiModel, "ai-model", "", "AI model name (provider default when empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) > 0 {
		url = args[0]
	}
	if url == "" && directText == "" {
		return fmt.Errorf("provide a URL argument or --text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		if url != "" {
			fmt.Fprintf(os.Stderr, "Analyzing: %s\n", url)
		} else {
			fmt.Fprintf(os.Stderr, "Analyzing direct text (%d chars)\n", len(directText))
		}
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache

	if err := configureAI(cfg); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Analyze(ctx, url, directText)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Word count: %d\n", report.Metadata.WordCount)
		fmt.Fprintf(os.Stderr, "✓ Indicator matches: %d\n", report.DetailedMatches.TotalMatches())
		fmt.Fprintf(os.Stderr, "✓ Propaganda score: %d/100\n", report.PropagandaScore)
		fmt.Fprintln(os.Stderr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// configureAI applies the AI flags and pulls credentials from the
// environment. Disabled AI leaves the provider empty.
func configureAI(cfg *model.Config) error {
	if !aiEnabled {
		cfg.AI.Provider = ""
		return nil
	}

	cfg.AI.Provider = aiProvider
	cfg.AI.Model = aiModel

	switch aiProvider {
	case "openai":
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.AI.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.AI.BaseURL = baseURL
		}
	}

	return nil
}
