package ai

import "context"

// Provider defines the interface for AI text-analysis backends. A provider
// takes an instruction prompt and returns the model's raw completion text;
// parsing that text is the scorer's job, not the provider's.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze sends the prompt and returns the raw completion text
	Analyze(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds AI provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1500,
	}
}

const systemPrompt = "You are a media-literacy assistant that evaluates article text " +
	"for propaganda and bias indicators. You respond with valid JSON only, no prose."

// BuildPrompt constructs the fixed instruction prompt for propaganda analysis.
// The response contract mirrors model.AIAnalysisResult.
func BuildPrompt(text string) string {
	return `Analyze the following article text for propaganda and manipulative bias.

Respond with valid JSON only, using exactly this structure:
{
  "propaganda_likelihood": <integer 0-100>,
  "detected_techniques": [
    {"name": "<technique name>", "example": "<quote from the text>", "explanation": "<why this is manipulative>"}
  ],
  "overall_analysis": "<2-4 sentence assessment of the article's balance and reliability>",
  "suggested_corrections": "<how a reader should verify or balance this article>"
}

Do not wrap the JSON in markdown fences or add commentary before or after it.

Article text:
` + text
}
