package question

// DefaultPack returns the built-in trivia/math bank used when no external
// source is configured. Order matters: rounds rotate through it front to back.
func DefaultPack() []Question {
	return []Question{
		{
			Text:          "What is 7 x 8?",
			CorrectAnswer: "56",
			Options:       []string{"54", "56", "58", "64"},
		},
		{
			Text:          "What is the capital of Australia?",
			CorrectAnswer: "Canberra",
			Options:       []string{"Sydney", "Melbourne", "Canberra", "Perth"},
		},
		{
			Text:          "What is the square root of 144?",
			CorrectAnswer: "12",
			Options:       []string{"10", "11", "12", "14"},
		},
		{
			Text:          "Which planet is known as the Red Planet?",
			CorrectAnswer: "Mars",
			Options:       []string{"Venus", "Mars", "Jupiter", "Mercury"},
		},
		{
			Text:          "What is 15% of 200?",
			CorrectAnswer: "30",
			Options:       []string{"20", "25", "30", "35"},
		},
		{
			Text:          "What is the largest ocean on Earth?",
			CorrectAnswer: "Pacific",
			Options:       []string{"Atlantic", "Indian", "Arctic", "Pacific"},
		},
		{
			Text:          "What is 9 + 6 x 3?",
			CorrectAnswer: "27",
			Options:       []string{"45", "27", "33", "21"},
		},
		{
			Text:          "Which element has the chemical symbol O?",
			CorrectAnswer: "Oxygen",
			Options:       []string{"Gold", "Osmium", "Oxygen", "Silver"},
		},
		{
			Text:          "What is the capital of Japan?",
			CorrectAnswer: "Tokyo",
			Options:       []string{"Kyoto", "Osaka", "Tokyo", "Nagoya"},
		},
		{
			Text:          "What is 2 to the power of 6?",
			CorrectAnswer: "64",
			Options:       []string{"32", "64", "128", "36"},
		},
	}
}
