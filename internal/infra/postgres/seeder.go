package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	pgmigrations "github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// OpenBun opens a bun handle over the pgdriver connector.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending schema migration and returns the applied group.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("migrator init: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID            int64  `bun:"id,pk,autoincrement"`
	Text          string `bun:"text,notnull"`
	AnswerA       string `bun:"answer_a"`
	AnswerB       string `bun:"answer_b"`
	AnswerC       string `bun:"answer_c"`
	AnswerD       string `bun:"answer_d"`
	CorrectAnswer string `bun:"correct_answer,notnull"`
	Tip           string `bun:"tip"`
	Subject       string `bun:"subject"`
	Level         string `bun:"level"`
}

// Seeder writes question sets through bun. It implements app.QuestionWriter.
type Seeder struct {
	db *bun.DB
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

// ReplaceQuestions clears the questions table and inserts questions in one transaction.
func (s *Seeder) ReplaceQuestions(ctx context.Context, questions []domain.Question) (int, error) {
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, questionRow{
			Text:          q.Text,
			AnswerA:       q.Alternative(domain.LabelA),
			AnswerB:       q.Alternative(domain.LabelB),
			AnswerC:       q.Alternative(domain.LabelC),
			AnswerD:       q.Alternative(domain.LabelD),
			CorrectAnswer: string(q.Correct),
			Tip:           q.Hint,
			Subject:       q.Subject,
			Level:         q.Level,
		})
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*questionRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
