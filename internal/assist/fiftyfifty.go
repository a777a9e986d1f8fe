// Package assist holds the presentation-side aids: the 50/50 lifeline and the
// hint rule table. Everything here is a pure function over question content;
// nothing touches match state.
package assist

import "math/rand"

// FiftyFifty removes two wrong options, keeping the correct answer and one
// randomly chosen wrong option in their original relative order. If the
// options cannot be narrowed (correct answer missing, or fewer than two wrong
// options), the input is returned unchanged as a copy.
func FiftyFifty(options []string, correctAnswer string, rnd *rand.Rand) []string {
	correctIdx := -1
	var wrongIdx []int
	for i, opt := range options {
		if correctIdx == -1 && opt == correctAnswer {
			correctIdx = i
			continue
		}
		wrongIdx = append(wrongIdx, i)
	}
	if correctIdx == -1 || len(wrongIdx) < 2 {
		return append([]string(nil), options...)
	}

	keep := wrongIdx[rnd.Intn(len(wrongIdx))]
	if keep < correctIdx {
		return []string{options[keep], options[correctIdx]}
	}
	return []string{options[correctIdx], options[keep]}
}
