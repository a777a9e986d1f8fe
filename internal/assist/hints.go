package assist

import "strings"

// hintRule maps a case-insensitive substring of the question text to a hint.
// Rules are evaluated in order; the first match wins.
type hintRule struct {
	pattern string
	hint    string
}

var hintRules = []hintRule{
	{"square root", "Which number multiplied by itself gives this value?"},
	{"power of", "Double the result once for each step in the exponent."},
	{"% of", "Convert the percentage to a fraction, then multiply."},
	{" x ", "Break the multiplication into smaller products and add them up."},
	{" + ", "Multiplication binds tighter than addition."},
	{"capital", "Think of the seat of government, not the biggest city."},
	{"planet", "Its color comes from iron oxide on the surface."},
	{"ocean", "It borders Asia, Oceania and the Americas."},
	{"chemical symbol", "You breathe it every moment."},
}

// HintFor returns the hint for the first rule whose pattern appears in the
// question text, or the empty string when no rule matches.
func HintFor(questionText string) string {
	lower := strings.ToLower(questionText)
	for _, rule := range hintRules {
		if strings.Contains(lower, strings.ToLower(rule.pattern)) {
			return rule.hint
		}
	}
	return ""
}
