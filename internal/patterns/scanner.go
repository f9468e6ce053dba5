package patterns

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/propascan/propascan/internal/model"
)

// Scanner finds propaganda-indicator patterns in article text and derives
// a density-based heuristic score. Scanners are stateless after
// construction and safe for concurrent use.
type Scanner struct {
	rules         []compiledRule
	contextRadius int
	densityScale  float64
}

type compiledRule struct {
	category model.PatternCategory
	re       *regexp.Regexp
}

// NewScanner creates a scanner using the given policy constants.
func NewScanner(cfg model.AnalysisConfig) *Scanner {
	rules := make([]compiledRule, len(registry))
	for i, rule := range registry {
		rules[i] = compiledRule{
			category: rule.category,
			re:       compileRule(rule.terms),
		}
	}

	radius := cfg.ContextRadius
	if radius <= 0 {
		radius = 50
	}
	scale := cfg.DensityScale
	if scale <= 0 {
		scale = 2000
	}

	return &Scanner{
		rules:         rules,
		contextRadius: radius,
		densityScale:  scale,
	}
}

// ScanResult holds the outcome of a pattern scan.
type ScanResult struct {
	Matches      model.DetailedMatchSet
	TotalMatches int
	WordCount    int
}

// Scan finds all category matches in text. Matching is case-insensitive in
// the compiled rules; a token can count toward multiple categories
// independently. Matches within one category are non-overlapping, in
// first-to-last order.
func (s *Scanner) Scan(text string) ScanResult {
	matches := make(model.DetailedMatchSet)
	total := 0

	for _, rule := range s.rules {
		locs := rule.re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}

		found := make([]model.PatternMatch, 0, len(locs))
		for _, loc := range locs {
			start, end := loc[0], loc[1]
			found = append(found, model.PatternMatch{
				Category:    rule.category,
				MatchedText: text[start:end],
				Context:     s.contextWindow(text, start, end),
				Position:    start,
			})
		}

		matches[rule.category] = found
		total += len(found)
	}

	return ScanResult{
		Matches:      matches,
		TotalMatches: total,
		WordCount:    len(strings.Fields(text)),
	}
}

// Score converts match density into a 0-100 heuristic score:
// min(round(total/words*scale), 100). Zero words yields zero, not a
// division fault. With the default scale this is matches per 100 words
// amplified twentyfold, capped so short match-dense text cannot run away.
func (s *Scanner) Score(totalMatches, wordCount int) int {
	if wordCount <= 0 {
		return 0
	}

	score := int(math.Round(float64(totalMatches) / float64(wordCount) * s.densityScale))
	if score > 100 {
		score = 100
	}
	return score
}

// contextWindow extracts the fixed-width context around a match, clamped to
// the text bounds and wrapped in ellipsis markers even at boundaries. The
// edges widen to the nearest rune start so the window never cuts a
// multibyte character in half.
func (s *Scanner) contextWindow(text string, start, end int) string {
	lo := start - s.contextRadius
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}

	hi := end + s.contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}

	return "..." + text[lo:hi] + "..."
}
