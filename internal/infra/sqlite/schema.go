package sqlite

import (
	"context"
	"database/sql"
)

func initSchema(ctx context.Context, db *sql.DB) error {
	// Same shape as the desktop game's database so existing files stay readable.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			answer_a TEXT,
			answer_b TEXT,
			answer_c TEXT,
			answer_d TEXT,
			correct_answer TEXT NOT NULL,
			tip TEXT,
			subject TEXT,
			level TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_level_subject ON questions(level, subject);`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
