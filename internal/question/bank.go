package question

import (
	"errors"
	"fmt"
)

// ErrEmptyBank is returned when a bank is constructed with no questions.
var ErrEmptyBank = errors.New("question bank is empty")

// Bank is an ordered, immutable sequence of questions. Rounds rotate through
// the bank in order and wrap around when they exceed its length.
type Bank struct {
	questions []Question
}

// NewBank validates every question and returns an immutable bank.
func NewBank(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	return &Bank{questions: append([]Question(nil), questions...)}, nil
}

// ForRound returns the question for a 1-based round number, cycling through
// the bank: round N maps to index (N-1) mod len.
func (b *Bank) ForRound(round int) Question {
	if round < 1 {
		round = 1
	}
	return b.questions[(round-1)%len(b.questions)]
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a copy of the bank contents in order.
func (b *Bank) Questions() []Question {
	return append([]Question(nil), b.questions...)
}
