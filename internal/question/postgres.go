package question

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLoader reads the question bank from the questions table, ordered by
// the position column. Rows are seeded by cmd/migrator.
type PostgresLoader struct {
	pool *pgxpool.Pool
}

// NewPostgresLoader creates a loader backed by a pgx connection pool.
func NewPostgresLoader(pool *pgxpool.Pool) *PostgresLoader {
	return &PostgresLoader{pool: pool}
}

func (l *PostgresLoader) Load(ctx context.Context) ([]Question, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT prompt, correct_answer, options FROM questions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.Text, &q.CorrectAnswer, &q.Options); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question rows: %w", err)
	}
	return questions, nil
}
