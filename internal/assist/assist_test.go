package assist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiftyFiftyKeepsCorrectAndOneWrong(t *testing.T) {
	options := []string{"54", "56", "58", "64"}
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		filtered := FiftyFifty(options, "56", rnd)
		require.Len(t, filtered, 2)
		assert.Contains(t, filtered, "56")
		assert.NotEqual(t, filtered[0], filtered[1])
	}
}

func TestFiftyFiftyPreservesOriginalOrder(t *testing.T) {
	options := []string{"Sydney", "Melbourne", "Canberra", "Perth"}
	rnd := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		filtered := FiftyFifty(options, "Canberra", rnd)
		require.Len(t, filtered, 2)
		if filtered[0] == "Canberra" {
			assert.Equal(t, "Perth", filtered[1], "only Perth comes after Canberra")
		} else {
			assert.Contains(t, []string{"Sydney", "Melbourne"}, filtered[0])
			assert.Equal(t, "Canberra", filtered[1])
		}
	}
}

func TestFiftyFiftyEventuallyPicksEachWrongOption(t *testing.T) {
	options := []string{"a", "b", "c", "d"}
	rnd := rand.New(rand.NewSource(42))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		filtered := FiftyFifty(options, "a", rnd)
		require.Len(t, filtered, 2)
		seen[filtered[1]] = true
	}
	assert.Len(t, seen, 3, "every wrong option should survive sometimes")
}

func TestFiftyFiftyDegenerateInputsReturnedUnchanged(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	assert.Equal(t, []string{"x", "y"}, FiftyFifty([]string{"x", "y"}, "x", rnd),
		"a single wrong option cannot be narrowed")
	assert.Equal(t, []string{"x", "y", "z"}, FiftyFifty([]string{"x", "y", "z"}, "missing", rnd),
		"correct answer absent from options")
}

func TestHintForFirstMatchWins(t *testing.T) {
	assert.Equal(t,
		"Break the multiplication into smaller products and add them up.",
		HintFor("What is 9 + 6 x 3?"),
		"the multiplication rule precedes the addition rule")
}

func TestHintForMatchesAreCaseInsensitive(t *testing.T) {
	withHint := HintFor("What is the CAPITAL of Japan?")
	assert.NotEmpty(t, withHint)
	assert.Equal(t, HintFor("What is the capital of Japan?"), withHint)
}

func TestHintForNoMatch(t *testing.T) {
	assert.Empty(t, HintFor("Who painted the Mona Lisa?"))
}
