package report

import (
	"fmt"
	"strings"

	"github.com/propascan/propascan/internal/model"
	"github.com/propascan/propascan/internal/patterns"
)

// Score bands are closed design policy, not configuration.
const (
	moderateBand = 30
	highBand     = 70
)

const (
	moderateCorrectionFallback = "Consider consulting multiple sources for a more balanced perspective on this topic."
	highCorrectionFallback     = "Consult established fact-checking sources before sharing this article."
)

// Builder assembles the final PropagandaReport from the scan outcome, the
// fused score, and the optional AI result. Reports are request-scoped and
// deterministic: the same inputs always produce the same report.
type Builder struct{}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build assembles the report. ai may be nil.
func (b *Builder) Build(content *model.ExtractedContent, scan patterns.ScanResult, finalScore int, ai *model.AIAnalysisResult) *model.PropagandaReport {
	techniques := detectedTechniques(scan.Matches, ai)

	return &model.PropagandaReport{
		Metadata: model.ReportMetadata{
			Title:     content.Title,
			Author:    content.Author,
			Date:      content.Date,
			Source:    content.Source,
			WordCount: scan.WordCount,
		},
		PropagandaScore:    finalScore,
		DetailedMatches:    scan.Matches,
		DetectedTechniques: techniques,
		Analysis:           analysisText(finalScore, scan.TotalMatches, len(techniques), ai),
		Correction:         correctionText(finalScore, ai),
	}
}

// detectedTechniques lists pattern categories with at least one match in
// registry order, followed by AI technique names in AI order. Duplicates
// between the two lists are kept.
func detectedTechniques(matches model.DetailedMatchSet, ai *model.AIAnalysisResult) []string {
	techniques := make([]string, 0, len(matches))

	for _, category := range patterns.Categories() {
		if len(matches[category]) > 0 {
			techniques = append(techniques, string(category))
		}
	}

	if ai != nil {
		for _, technique := range ai.DetectedTechniques {
			if name := strings.TrimSpace(technique.Name); name != "" {
				techniques = append(techniques, name)
			}
		}
	}

	return techniques
}

// analysisText picks the score-band summary. The AI's overall analysis,
// when present, is appended so the richer assessment is never dropped.
func analysisText(score, totalMatches, techniqueCount int, ai *model.AIAnalysisResult) string {
	var summary string

	switch {
	case score < moderateBand:
		summary = "This article appears to be factual and well-balanced. The reporting is objective and supported by verifiable sources."
	case score < highBand:
		summary = fmt.Sprintf(
			"This article shows some signs of bias and selective reporting. "+
				"%d indicator %s across %d %s suggest the presentation may be misleading.",
			totalMatches, plural(totalMatches, "match", "matches"),
			techniqueCount, plural(techniqueCount, "technique", "techniques"))
	default:
		summary = fmt.Sprintf(
			"High likelihood of propaganda content. "+
				"%d indicator %s across %d %s point to emotional manipulation and biased reporting.",
			totalMatches, plural(totalMatches, "match", "matches"),
			techniqueCount, plural(techniqueCount, "technique", "techniques"))
	}

	if ai != nil {
		if overall := strings.TrimSpace(ai.OverallAnalysis); overall != "" {
			summary += " " + overall
		}
	}

	return summary
}

// correctionText picks the correction string for the band. The AI's
// suggestion always wins when present; the low band has no generic
// fallback because no correction is warranted.
func correctionText(score int, ai *model.AIAnalysisResult) string {
	if ai != nil {
		if suggested := strings.TrimSpace(ai.SuggestedCorrections); suggested != "" {
			return suggested
		}
	}

	switch {
	case score < moderateBand:
		return ""
	case score < highBand:
		return moderateCorrectionFallback
	default:
		return highCorrectionFallback
	}
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
