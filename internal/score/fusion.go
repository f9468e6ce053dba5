package score

import (
	"math"

	"github.com/propascan/propascan/internal/model"
)

// Fuser combines the deterministic pattern score with the optional AI score
// into the final propaganda score.
type Fuser struct {
	patternWeight float64
	aiWeight      float64
}

// NewFuser creates a fuser with the given weighting policy. Weights must sum
// to 1; the defaults (0.4 pattern, 0.6 AI) weight the AI assessment more
// heavily as the richer signal while the pattern score anchors the result.
func NewFuser(cfg model.AnalysisConfig) *Fuser {
	pw, aw := cfg.PatternWeight, cfg.AIWeight
	if pw <= 0 || aw <= 0 {
		pw, aw = 0.4, 0.6
	}
	return &Fuser{patternWeight: pw, aiWeight: aw}
}

// Fuse combines the two scores. A nil aiScore means the AI collaborator was
// unavailable: the pattern score passes through unchanged, with no penalty
// for the missing signal. Both inputs are in [0,100] and the weights sum to
// 1, so the result is in [0,100] by construction.
func (f *Fuser) Fuse(patternScore int, aiScore *int) int {
	if aiScore == nil {
		return patternScore
	}
	return int(math.Round(float64(patternScore)*f.patternWeight + float64(*aiScore)*f.aiWeight))
}
