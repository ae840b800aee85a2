package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

// LoadQuestions returns every question with the exact level whose subject is
// in subjects (case-insensitive). It implements app.QuestionSource.
func (s *Store) LoadQuestions(ctx context.Context, level string, subjects []string) ([]domain.Question, error) {
	if len(subjects) == 0 {
		return nil, nil
	}
	db, err := s.conn(ctx, false)
	if err != nil {
		return nil, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(subjects)), ",")
	args := make([]interface{}, 0, len(subjects)+1)
	args = append(args, level)
	for _, subject := range subjects {
		args = append(args, strings.ToLower(subject))
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, text, answer_a, answer_b, answer_c, answer_d, correct_answer, tip, subject, level
		FROM questions
		WHERE level = ? AND LOWER(subject) IN (`+placeholders+`)
		ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query questions: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var (
			q                     domain.Question
			a, b, c, d, tip, subj sql.NullString
			lvl                   sql.NullString
			correct               string
		)
		if err := rows.Scan(&q.ID, &q.Text, &a, &b, &c, &d, &correct, &tip, &subj, &lvl); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Alternatives = map[domain.Label]string{
			domain.LabelA: a.String,
			domain.LabelB: b.String,
			domain.LabelC: c.String,
			domain.LabelD: d.String,
		}
		if label, ok := domain.ParseLabel(correct); ok {
			q.Correct = label
		} else {
			// left as stored so the repository drops it as malformed
			q.Correct = domain.Label(correct)
		}
		q.Hint = tip.String
		q.Subject = subj.String
		q.Level = lvl.String
		out = append(out, q)
	}
	return out, rows.Err()
}

// ReplaceQuestions clears the questions table and inserts questions in one
// transaction, creating the database file when needed. It returns the number
// of rows inserted.
func (s *Store) ReplaceQuestions(ctx context.Context, questions []domain.Question) (int, error) {
	db, err := s.conn(ctx, true)
	if err != nil {
		return 0, err
	}
	if err := initSchema(ctx, db); err != nil {
		return 0, fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return 0, fmt.Errorf("clear questions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (text, answer_a, answer_b, answer_c, answer_d, correct_answer, tip, subject, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, q := range questions {
		_, err := stmt.ExecContext(ctx,
			q.Text,
			q.Alternative(domain.LabelA),
			q.Alternative(domain.LabelB),
			q.Alternative(domain.LabelC),
			q.Alternative(domain.LabelD),
			string(q.Correct),
			q.Hint,
			q.Subject,
			q.Level,
		)
		if err != nil {
			return 0, fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(questions), nil
}
