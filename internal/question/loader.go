package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Loader fetches an ordered question list from a backing store.
type Loader interface {
	Load(ctx context.Context) ([]Question, error)
}

// StaticLoader serves a fixed in-memory question list (default pack, tests).
type StaticLoader struct {
	questions []Question
}

// NewStaticLoader wraps a fixed question list in a Loader.
func NewStaticLoader(questions []Question) *StaticLoader {
	return &StaticLoader{questions: append([]Question(nil), questions...)}
}

func (l *StaticLoader) Load(_ context.Context) ([]Question, error) {
	return append([]Question(nil), l.questions...), nil
}

// FileLoader reads a JSON array of questions from disk.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for a JSON bank file.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Load(_ context.Context) ([]Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse bank file %s: %w", l.path, err)
	}
	return questions, nil
}
