package model

// PatternCategory names a propaganda-indicator class. The full set and its
// iteration order are declared once in the patterns registry so results are
// reproducible and diffable across runs.
type PatternCategory string

const (
	CategoryEmotionalLanguage  PatternCategory = "emotional_language"
	CategoryAbsolutistTerms    PatternCategory = "absolutist_terms"
	CategoryUnverifiedClaims   PatternCategory = "unverified_claims"
	CategoryLoadedWords        PatternCategory = "loaded_words"
	CategoryFearMongering      PatternCategory = "fear_mongering"
	CategoryOversimplification PatternCategory = "oversimplification"
	CategoryAdHominem          PatternCategory = "ad_hominem"
	CategoryBandwagon          PatternCategory = "bandwagon"
	CategoryFalseDichotomy     PatternCategory = "false_dichotomy"
	CategoryConspiracyTerms    PatternCategory = "conspiracy_terms"
)

// PatternMatch records one vocabulary hit with its surrounding context.
type PatternMatch struct {
	Category    PatternCategory `json:"category"`
	MatchedText string          `json:"matched_text"`
	Context     string          `json:"context"`  // fixed-width window wrapped in ellipsis markers
	Position    int             `json:"position"` // character offset in the analyzed text
}

// DetailedMatchSet maps each category to its matches in text order.
// Only categories with at least one match are present.
type DetailedMatchSet map[PatternCategory][]PatternMatch

// TotalMatches sums match counts across all categories.
func (s DetailedMatchSet) TotalMatches() int {
	total := 0
	for _, matches := range s {
		total += len(matches)
	}
	return total
}
