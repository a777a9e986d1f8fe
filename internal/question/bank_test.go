package question

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []Question {
	return []Question{
		{Text: "What is 2 + 2?", CorrectAnswer: "4", Options: []string{"3", "4", "5", "6"}},
		{Text: "What is 3 x 3?", CorrectAnswer: "9", Options: []string{"6", "9", "12", "33"}},
		{Text: "What is 10 - 7?", CorrectAnswer: "3", Options: []string{"3", "7", "17", "70"}},
	}
}

func TestNewBankRejectsEmpty(t *testing.T) {
	_, err := NewBank(nil)
	assert.ErrorIs(t, err, ErrEmptyBank)
}

func TestNewBankValidatesQuestions(t *testing.T) {
	cases := []struct {
		name string
		q    Question
	}{
		{"missing text", Question{CorrectAnswer: "4", Options: []string{"3", "4", "5", "6"}}},
		{"missing answer", Question{Text: "x", Options: []string{"3", "4", "5", "6"}}},
		{"wrong option count", Question{Text: "x", CorrectAnswer: "4", Options: []string{"3", "4"}}},
		{"empty option", Question{Text: "x", CorrectAnswer: "4", Options: []string{"3", "4", "5", ""}}},
		{"answer not among options", Question{Text: "x", CorrectAnswer: "7", Options: []string{"3", "4", "5", "6"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBank([]Question{tc.q})
			assert.Error(t, err)
		})
	}
}

func TestBankForRoundCycles(t *testing.T) {
	bank, err := NewBank(sampleQuestions())
	require.NoError(t, err)

	qs := sampleQuestions()
	assert.Equal(t, qs[0], bank.ForRound(1))
	assert.Equal(t, qs[1], bank.ForRound(2))
	assert.Equal(t, qs[2], bank.ForRound(3))
	assert.Equal(t, qs[0], bank.ForRound(4), "round 4 wraps back to the first question")
	assert.Equal(t, qs[1], bank.ForRound(5))
	assert.Equal(t, qs[0], bank.ForRound(0), "out-of-range rounds clamp to round 1")
}

func TestBankIsImmutable(t *testing.T) {
	qs := sampleQuestions()
	bank, err := NewBank(qs)
	require.NoError(t, err)

	qs[0].Text = "mutated"
	assert.NotEqual(t, "mutated", bank.ForRound(1).Text)

	out := bank.Questions()
	out[0].Text = "also mutated"
	assert.NotEqual(t, "also mutated", bank.ForRound(1).Text)
}

func TestDefaultPackIsValid(t *testing.T) {
	bank, err := NewBank(DefaultPack())
	require.NoError(t, err)
	assert.Equal(t, 10, bank.Len())
}

func TestStaticLoader(t *testing.T) {
	loader := NewStaticLoader(sampleQuestions())
	got, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleQuestions(), got)
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	data, err := json.Marshal(sampleQuestions())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleQuestions(), got)
}

func TestFileLoaderErrors(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err = NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}
