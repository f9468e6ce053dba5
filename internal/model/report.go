package model

// AITechnique is one propaganda technique identified by the AI collaborator.
type AITechnique struct {
	Name        string `json:"name"`
	Example     string `json:"example,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// AIAnalysisResult holds the parsed output of the AI text-analysis
// collaborator. It is either fully populated or entirely absent (nil):
// a response that cannot be parsed into this shape is discarded whole,
// never carried as a half-filled record.
type AIAnalysisResult struct {
	PropagandaLikelihood int           `json:"propaganda_likelihood"` // 0-100
	DetectedTechniques   []AITechnique `json:"detected_techniques,omitempty"`
	OverallAnalysis      string        `json:"overall_analysis,omitempty"`
	SuggestedCorrections string        `json:"suggested_corrections,omitempty"`
}

// ReportMetadata describes the analyzed article.
type ReportMetadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Date      string `json:"date,omitempty"`
	Source    string `json:"source"`
	WordCount int    `json:"word_count"`
}

// PropagandaReport is the complete analysis verdict returned to the caller.
// Reports are request-scoped: built fresh per analysis, never persisted.
type PropagandaReport struct {
	Metadata           ReportMetadata   `json:"metadata"`
	PropagandaScore    int              `json:"propaganda_score"` // 0-100, fused value
	DetailedMatches    DetailedMatchSet `json:"detailed_matches"`
	DetectedTechniques []string         `json:"detected_techniques"`
	Analysis           string           `json:"analysis"`
	Correction         string           `json:"correction,omitempty"`
}
