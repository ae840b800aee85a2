package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/app"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/config"
	pgloader "github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/postgres"
	infraredis "github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/redis"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSeedCmd replaces the question store contents with a JSON question file.
func NewSeedCmd(configPath *string) *cobra.Command {
	var (
		path   string
		target string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load questions from a JSON file into the question store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if target == "" {
				target = cfg.Questions.Source
			}
			return runSeed(cmd.Context(), cmd, cfg, path, target)
		},
	}
	cmd.Flags().StringVar(&path, "file", "perguntas.json", "question file to import")
	cmd.Flags().StringVar(&target, "target", "", "store to seed: sqlite or postgres (defaults to questions.source)")
	return cmd
}

func runSeed(ctx context.Context, cmd *cobra.Command, cfg config.Config, path, target string) error {
	d := newDeps(cfg)
	defer d.close()
	log := d.log.WithFields(logrus.Fields{"file": path, "target": target})

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	questions, issues, err := app.ParseQuestionFile(f)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		log.WithField("position", issue.Position).Warn(issue.String())
	}
	if len(questions) == 0 {
		return fmt.Errorf("no valid questions in %s", path)
	}

	var writer app.QuestionWriter
	switch strings.ToLower(target) {
	case "postgres":
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
		db := pgloader.OpenBun(cfg.Postgres.URL)
		defer db.Close()
		writer = pgloader.NewSeeder(db)
	case "sqlite", "":
		store := sqlite.NewStore(cfg.SQLite.Path)
		defer store.Close()
		writer = store
	default:
		return fmt.Errorf("cannot seed question source %q", target)
	}

	n, err := writer.ReplaceQuestions(ctx, questions)
	if err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	if d.redis != nil {
		cache := infraredis.NewQuestionCache(d.redis, nil, 0)
		if err := cache.Invalidate(ctx); err != nil {
			log.WithError(err).Warn("could not clear cached questions")
		}
	}

	log.WithFields(logrus.Fields{"inserted": n, "skipped": len(issues)}).Info("questions seeded")
	fmt.Fprintf(cmd.OutOrStdout(), "%d questions inserted, %d skipped\n", n, len(issues))
	return nil
}
