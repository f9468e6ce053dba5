package ai

import (
	"strings"
	"testing"
)

func TestParseAnalysis_StrictJSON(t *testing.T) {
	raw := `{
		"propaganda_likelihood": 72,
		"detected_techniques": [
			{"name": "Fear mongering", "example": "a looming crisis", "explanation": "invokes dread without evidence"}
		],
		"overall_analysis": "The article leans heavily on emotional framing.",
		"suggested_corrections": "Verify the claims against primary sources."
	}`

	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed: %v", err)
	}
	if result.PropagandaLikelihood != 72 {
		t.Errorf("Expected likelihood 72, got %d", result.PropagandaLikelihood)
	}
	if len(result.DetectedTechniques) != 1 || result.DetectedTechniques[0].Name != "Fear mongering" {
		t.Errorf("Unexpected techniques: %+v", result.DetectedTechniques)
	}
	if result.SuggestedCorrections != "Verify the claims against primary sources." {
		t.Errorf("Unexpected corrections: %q", result.SuggestedCorrections)
	}
}

func TestParseAnalysis_JSONInProseWithTrailingComma(t *testing.T) {
	raw := `Sure, here is my assessment of the article:

{
  "propaganda_likelihood": 45,
  "detected_techniques": [],
  "overall_analysis": "Moderately slanted coverage.",
  "suggested_corrections": "Compare with other outlets.",
}

Let me know if you need anything else.`

	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed on near-JSON: %v", err)
	}
	if result.PropagandaLikelihood != 45 {
		t.Errorf("Expected likelihood 45, got %d", result.PropagandaLikelihood)
	}
}

func TestParseAnalysis_CodeFence(t *testing.T) {
	raw := "```json\n{\"propaganda_likelihood\": 10, \"overall_analysis\": \"Largely factual.\"}\n```"

	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed on fenced JSON: %v", err)
	}
	if result.PropagandaLikelihood != 10 {
		t.Errorf("Expected likelihood 10, got %d", result.PropagandaLikelihood)
	}
}

func TestParseAnalysis_CurlyQuotesAndStringLikelihood(t *testing.T) {
	raw := `{“propaganda_likelihood”: “64”, “overall_analysis”: “Slanted.”}`

	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed on curly quotes: %v", err)
	}
	if result.PropagandaLikelihood != 64 {
		t.Errorf("Expected likelihood 64, got %d", result.PropagandaLikelihood)
	}
}

func TestParseAnalysis_TechniquesAsStrings(t *testing.T) {
	raw := `{"propaganda_likelihood": 55, "detected_techniques": ["bandwagon", "loaded language", ""]}`

	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed: %v", err)
	}
	if len(result.DetectedTechniques) != 2 {
		t.Fatalf("Expected 2 techniques, got %d", len(result.DetectedTechniques))
	}
	if result.DetectedTechniques[0].Name != "bandwagon" {
		t.Errorf("Unexpected technique: %+v", result.DetectedTechniques[0])
	}
}

func TestParseAnalysis_LikelihoodClamped(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"propaganda_likelihood": 150}`, 100},
		{`{"propaganda_likelihood": -3}`, 0},
		{`{"propaganda_likelihood": 49.6}`, 50},
	}

	for _, tt := range tests {
		result, err := ParseAnalysis(tt.raw)
		if err != nil {
			t.Fatalf("ParseAnalysis(%q) failed: %v", tt.raw, err)
		}
		if result.PropagandaLikelihood != tt.want {
			t.Errorf("ParseAnalysis(%q) likelihood = %d, want %d", tt.raw, result.PropagandaLikelihood, tt.want)
		}
	}
}

func TestParseAnalysis_Unrecoverable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n  "},
		{"plain prose", "I cannot analyze this article."},
		{"missing likelihood", `{"overall_analysis": "fine"}`},
		{"hopeless syntax", `{"propaganda_likelihood": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result, err := ParseAnalysis(tt.raw); err == nil {
				t.Errorf("Expected error, got result %+v", result)
			}
		})
	}
}

func TestRepairJSON_SlicesOutermostObject(t *testing.T) {
	raw := "noise {\"a\": 1} trailing"
	repaired := repairJSON(raw)
	if !strings.HasPrefix(repaired, "{") || !strings.HasSuffix(repaired, "}") {
		t.Errorf("Expected braces-delimited output, got %q", repaired)
	}
}
