package question

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question is an immutable quiz item: a prompt, the correct answer, and four
// answer options of which exactly one equals the correct answer.
type Question struct {
	Text          string   `json:"text" validate:"required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
}

var validate = validator.New()

// Validate checks structural validity: non-empty text and answer, exactly four
// non-empty options, and one option matching the correct answer.
func (q Question) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validate question %q: %w", q.Text, err)
	}

	found := false
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("question %q: no option matches the correct answer", q.Text)
	}
	return nil
}
