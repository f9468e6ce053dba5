package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/propascan/propascan/internal/ai"
	"github.com/propascan/propascan/internal/cache"
	"github.com/propascan/propascan/internal/extract"
	"github.com/propascan/propascan/internal/model"
	"github.com/propascan/propascan/internal/patterns"
	"github.com/propascan/propascan/internal/report"
	"github.com/propascan/propascan/internal/score"
)

// Pipeline runs the full analysis flow: normalize input, scan for pattern
// indicators and obtain the AI assessment concurrently, fuse the two
// scores, and assemble the report. A pipeline is built once at startup
// and is safe for concurrent use; all per-request state lives on the stack.
type Pipeline struct {
	normalizer *extract.Normalizer
	scanner    *patterns.Scanner
	aiScorer   *ai.Scorer
	fuser      *score.Fuser
	builder    *report.Builder
}

// NewPipeline wires a pipeline from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	fetcher := NewFetcher(cfg.HTTP, cfg.RateLimit)

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	aiScorer, err := ai.NewScorer(ai.ConfigFromModel(cfg.AI, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("configure AI scorer: %w", err)
	}

	return &Pipeline{
		normalizer: extract.NewNormalizer(fetcher, store, cfg.Cache.MemoryTTL),
		scanner:    patterns.NewScanner(cfg.Analysis),
		aiScorer:   aiScorer,
		fuser:      score.NewFuser(cfg.Analysis),
		builder:    report.NewBuilder(),
	}, nil
}

// newPipelineWith wires explicit collaborators (used in tests).
func newPipelineWith(normalizer *extract.Normalizer, scanner *patterns.Scanner, aiScorer *ai.Scorer, fuser *score.Fuser) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		scanner:    scanner,
		aiScorer:   aiScorer,
		fuser:      fuser,
		builder:    report.NewBuilder(),
	}
}

// Analyze produces a propaganda report for the given input. Direct content
// wins over the URL when both are present. The only caller-visible failure
// is extract.ErrNoContent; AI trouble degrades silently to a pattern-only
// score.
func (p *Pipeline) Analyze(ctx context.Context, url, content string) (*model.PropagandaReport, error) {
	extracted, err := p.normalizer.Normalize(ctx, url, content)
	if err != nil {
		return nil, err
	}

	// The AI call is the only slow operation; run it alongside the scan.
	// Both read the same immutable text, so no coordination is needed
	// beyond waiting for the result.
	aiDone := make(chan *model.AIAnalysisResult, 1)
	go func() {
		aiDone <- p.aiScorer.Score(ctx, extracted.Text)
	}()

	scan := p.scanner.Scan(extracted.Text)
	patternScore := p.scanner.Score(scan.TotalMatches, scan.WordCount)

	aiResult := <-aiDone

	var aiScore *int
	if aiResult != nil {
		aiScore = &aiResult.PropagandaLikelihood
	}

	finalScore := p.fuser.Fuse(patternScore, aiScore)

	return p.builder.Build(extracted, scan, finalScore, aiResult), nil
}
