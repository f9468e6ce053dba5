package ai

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/propascan/propascan/internal/model"
)

// maxPromptChars caps how much article text is sent to the collaborator.
// Long articles are truncated rather than split; the leading text carries
// the framing the analysis cares about.
const maxPromptChars = 6000

// Scorer obtains an AI propaganda assessment for article text. The AI
// collaborator is an enhancement, not a dependency: every failure mode
// (missing credential, network fault, timeout, empty or malformed output)
// degrades to an absent result, never to an error the caller sees.
type Scorer struct {
	provider Provider
}

// NewScorer creates a scorer for the configured provider. An empty provider
// name yields a disabled scorer, which is still safe to call.
func NewScorer(config Config) (*Scorer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Scorer{provider: provider}, nil
}

// NewScorerWithProvider wires an explicit provider (used in tests).
func NewScorerWithProvider(provider Provider) *Scorer {
	return &Scorer{provider: provider}
}

// IsEnabled reports whether an AI provider is configured.
func (s *Scorer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// Score analyzes text through the AI collaborator. It returns nil whenever
// no complete result could be obtained; the analysis then proceeds on the
// pattern score alone. One provider call per analysis, no retries.
func (s *Scorer) Score(ctx context.Context, text string) *model.AIAnalysisResult {
	if !s.IsEnabled() {
		return nil
	}

	if len(text) > maxPromptChars {
		cut := maxPromptChars
		// Back off to a rune start so the prompt never ends mid-sequence.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	raw, err := s.provider.Analyze(ctx, BuildPrompt(text))
	if err != nil {
		log.Printf("AI analysis unavailable (%s): %v", s.provider.Name(), err)
		return nil
	}

	result, err := ParseAnalysis(raw)
	if err != nil {
		// Malformed output is logged for diagnosis but treated exactly
		// like an unavailable collaborator.
		log.Printf("AI analysis discarded (%s): %v", s.provider.Name(), err)
		return nil
	}

	return result
}
