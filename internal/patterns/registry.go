package patterns

import (
	"regexp"
	"strings"

	"github.com/propascan/propascan/internal/model"
)

// categoryRule binds one pattern category to its matching vocabulary.
type categoryRule struct {
	category model.PatternCategory
	terms    []string
}

// registry is the fixed, ordered set of propaganda-indicator categories.
// Matching, reporting, and technique listing all iterate in this declared
// order so results are reproducible and diffable across runs. The
// vocabularies are heuristic policy carried from the original design.
var registry = []categoryRule{
	{model.CategoryEmotionalLanguage, []string{
		"shocking", "outrageous", "devastating", "horrifying", "unbelievable",
		"incredible", "stunning", "explosive", "bombshell", "terrifying",
		"heartbreaking", "disgraceful",
	}},
	{model.CategoryAbsolutistTerms, []string{
		"always", "never", "every", "all", "none", "everyone", "nobody",
		"undeniable", "unquestionable", "certainly", "absolutely", "completely",
	}},
	{model.CategoryUnverifiedClaims, []string{
		"sources say", "reportedly", "allegedly", "rumored", "insiders claim",
		"some say", "many believe", "it is said", "experts warn",
		"anonymous sources",
	}},
	{model.CategoryLoadedWords, []string{
		"regime", "radical", "extremist", "thug", "elite", "corrupt",
		"sinister", "evil", "traitor", "puppet", "crony", "henchman",
	}},
	{model.CategoryFearMongering, []string{
		"crisis", "catastrophe", "collapse", "disaster", "threat", "danger",
		"invasion", "epidemic", "chaos", "destruction", "doomsday", "meltdown",
	}},
	{model.CategoryOversimplification, []string{
		"simply", "obviously", "clearly", "just", "merely", "plain and simple",
		"it boils down to", "the only reason",
	}},
	{model.CategoryAdHominem, []string{
		"idiot", "moron", "incompetent", "liar", "fraud", "hypocrite",
		"clown", "crooked", "corrupt politician",
	}},
	{model.CategoryBandwagon, []string{
		"everyone knows", "everybody agrees", "join the movement",
		"the people demand", "growing consensus", "majority agrees",
		"don't be left behind",
	}},
	{model.CategoryFalseDichotomy, []string{
		"either", "only choice", "no alternative", "us or them",
		"with us or against us", "the only way", "no other option",
	}},
	{model.CategoryConspiracyTerms, []string{
		"cover-up", "coverup", "hidden agenda", "deep state", "shadow government",
		"they don't want you to know", "wake up", "mainstream media lies",
		"secret plan", "puppet masters",
	}},
}

// Categories returns the category names in registry order.
func Categories() []model.PatternCategory {
	out := make([]model.PatternCategory, len(registry))
	for i, rule := range registry {
		out[i] = rule.category
	}
	return out
}

// compileRule builds a case-insensitive whole-word matcher for a vocabulary.
// Terms may contain spaces; word boundaries apply at both ends of the whole
// term. The (?i) flag keeps matching against the original text, so byte
// offsets stay valid even when case mapping changes rune widths.
func compileRule(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(term))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
