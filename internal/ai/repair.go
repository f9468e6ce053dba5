package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/propascan/propascan/internal/model"
)

// AI collaborators are asked for valid JSON but routinely return near-JSON:
// markdown fences, prose before or after the object, trailing commas, curly
// quotes. Parsing is two-stage: a strict decode first, then a tolerant
// recovery pass over a repaired copy of the text. Either stage yields a
// complete result or the whole response is discarded.

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	codeFenceRe     = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
)

// ParseAnalysis parses raw AI output into a complete AIAnalysisResult.
// Returns an error when neither strict nor tolerant parsing succeeds;
// callers treat that as the AI result being absent.
func ParseAnalysis(raw string) (*model.AIAnalysisResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty response")
	}

	// Stage 1: strict parse of the text as-is
	if result, err := decodeAnalysis(raw); err == nil {
		return result, nil
	}

	// Stage 2: tolerant parse of a repaired copy
	repaired := repairJSON(raw)
	result, err := decodeAnalysis(repaired)
	if err != nil {
		return nil, fmt.Errorf("unparseable AI output: %w", err)
	}
	return result, nil
}

// rawAnalysis tolerates the shape drift seen in real model output: the
// likelihood may arrive as a number or a quoted string, and techniques may
// be objects or bare strings.
type rawAnalysis struct {
	PropagandaLikelihood json.RawMessage `json:"propaganda_likelihood"`
	DetectedTechniques   json.RawMessage `json:"detected_techniques"`
	OverallAnalysis      string          `json:"overall_analysis"`
	SuggestedCorrections string          `json:"suggested_corrections"`
}

func decodeAnalysis(text string) (*model.AIAnalysisResult, error) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}

	// The likelihood is the one mandatory field; without it there is no
	// usable result, and a partial record must not flow into fusion.
	if len(raw.PropagandaLikelihood) == 0 {
		return nil, fmt.Errorf("missing propaganda_likelihood")
	}

	likelihood, err := decodeLikelihood(raw.PropagandaLikelihood)
	if err != nil {
		return nil, err
	}

	return &model.AIAnalysisResult{
		PropagandaLikelihood: likelihood,
		DetectedTechniques:   decodeTechniques(raw.DetectedTechniques),
		OverallAnalysis:      strings.TrimSpace(raw.OverallAnalysis),
		SuggestedCorrections: strings.TrimSpace(raw.SuggestedCorrections),
	}, nil
}

// decodeLikelihood accepts 45, 45.0, or "45" and clamps to [0,100].
func decodeLikelihood(raw json.RawMessage) (int, error) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid propaganda_likelihood %q", text)
	}

	likelihood := int(value + 0.5)
	if likelihood < 0 {
		likelihood = 0
	}
	if likelihood > 100 {
		likelihood = 100
	}
	return likelihood, nil
}

// decodeTechniques accepts either name/example/explanation objects or a
// plain list of technique names. An undecodable list degrades to none; the
// likelihood alone still makes a complete result.
func decodeTechniques(raw json.RawMessage) []model.AITechnique {
	if len(raw) == 0 {
		return nil
	}

	var structured []model.AITechnique
	if err := json.Unmarshal(raw, &structured); err == nil {
		return dropUnnamed(structured)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		techniques := make([]model.AITechnique, 0, len(names))
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				techniques = append(techniques, model.AITechnique{Name: name})
			}
		}
		return techniques
	}

	return nil
}

func dropUnnamed(techniques []model.AITechnique) []model.AITechnique {
	kept := techniques[:0]
	for _, t := range techniques {
		if strings.TrimSpace(t.Name) != "" {
			kept = append(kept, t)
		}
	}
	return kept
}

// repairJSON recovers a best-effort JSON object from near-JSON text.
func repairJSON(text string) string {
	// Prefer the contents of a markdown code fence when one is present
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	// Slice out the outermost object, discarding enclosing prose
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	// Curly quotes break the decoder; models emit them under prose habits
	replacer := strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
	text = replacer.Replace(text)

	// Trailing commas before a closing brace or bracket
	text = trailingCommaRe.ReplaceAllString(text, "$1")

	return strings.TrimSpace(text)
}
