package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader reads questions from Postgres. It implements app.QuestionSource.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, level string, subjects []string) ([]domain.Question, error) {
	lowered := make([]string, 0, len(subjects))
	for _, s := range subjects {
		lowered = append(lowered, strings.ToLower(s))
	}

	rows, err := l.pool.Query(ctx, `
		SELECT id, text,
		       COALESCE(answer_a, ''), COALESCE(answer_b, ''), COALESCE(answer_c, ''), COALESCE(answer_d, ''),
		       correct_answer, COALESCE(tip, ''), COALESCE(subject, ''), COALESCE(level, '')
		FROM questions
		WHERE level = $1 AND LOWER(subject) = ANY($2)
		ORDER BY id`, level, lowered)
	if err != nil {
		return nil, fmt.Errorf("%w: load questions: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var (
			q          domain.Question
			a, b, c, d string
			correct    string
		)
		if err := rows.Scan(&q.ID, &q.Text, &a, &b, &c, &d, &correct, &q.Hint, &q.Subject, &q.Level); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Alternatives = map[domain.Label]string{
			domain.LabelA: a, domain.LabelB: b, domain.LabelC: c, domain.LabelD: d,
		}
		q.Correct = domain.Label(correct)
		if label, ok := domain.ParseLabel(correct); ok {
			q.Correct = label
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
