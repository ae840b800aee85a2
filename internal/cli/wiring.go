package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/app"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/config"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/file"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/memory"
	pgloader "github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/postgres"
	infraredis "github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/redis"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/sqlite"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// deps holds the infrastructure built from config. close releases it.
type deps struct {
	log    *logrus.Logger
	redis  *redis.Client
	closer []func()
}

func newDeps(cfg config.Config) *deps {
	d := &deps{log: config.NewLogger(cfg, os.Stderr)}
	if cfg.Redis.Addr != "" {
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closer = append(d.closer, func() { _ = d.redis.Close() })
	}
	return d
}

func (d *deps) close() {
	for i := len(d.closer) - 1; i >= 0; i-- {
		d.closer[i]()
	}
}

// questionSource builds the configured store wrapped in a cache. Connection
// failures are logged and leave the game on built-in questions.
func (d *deps) questionSource(ctx context.Context, cfg config.Config) app.QuestionSource {
	var source app.QuestionSource
	switch strings.ToLower(cfg.Questions.Source) {
	case "postgres":
		if cfg.Postgres.URL == "" {
			d.log.Warn("postgres question source selected but postgres url not configured")
			return nil
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			d.log.WithError(err).Warn("connect postgres")
			return nil
		}
		d.closer = append(d.closer, pool.Close)
		source = pgloader.NewQuestionLoader(pool)
	case "static":
		source = memory.NewStaticQuestionSource(sampleQuestions()...)
	default:
		store := sqlite.NewStore(cfg.SQLite.Path)
		d.closer = append(d.closer, func() { _ = store.Close() })
		source = store
	}

	ttl := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if d.redis != nil {
		return infraredis.NewQuestionCache(d.redis, source, ttl)
	}
	return memory.NewQuestionCache(source, ttl)
}

func (d *deps) ledger(cfg config.Config) (app.Ledger, error) {
	switch strings.ToLower(cfg.Ledger.Backend) {
	case "redis":
		if d.redis == nil {
			return nil, fmt.Errorf("redis ledger selected but redis addr not configured")
		}
		return infraredis.NewLedger(d.redis, cfg.Ledger.Key), nil
	case "memory":
		return memory.NewLedger(), nil
	case "file", "":
		return file.NewLedger(cfg.Ledger.Path), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}

// sampleQuestions backs the static source for demos without a database.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:   1,
			Text: "Quanto é 7 x 8?",
			Alternatives: map[domain.Label]string{
				domain.LabelA: "54", domain.LabelB: "56", domain.LabelC: "58", domain.LabelD: "64",
			},
			Correct: domain.LabelB,
			Hint:    "Pense em 7 x 7 + 7.",
			Subject: "matematica",
			Level:   "fundamental",
		},
		{
			ID:   2,
			Text: "Qual é a raiz quadrada de 81?",
			Alternatives: map[domain.Label]string{
				domain.LabelA: "7", domain.LabelB: "8", domain.LabelC: "9", domain.LabelD: "10",
			},
			Correct: domain.LabelC,
			Hint:    "Que número vezes ele mesmo dá 81?",
			Subject: "matematica",
			Level:   "fundamental",
		},
		{
			ID:   3,
			Text: "Em que ano o Brasil se tornou independente?",
			Alternatives: map[domain.Label]string{
				domain.LabelA: "1500", domain.LabelB: "1808", domain.LabelC: "1822", domain.LabelD: "1889",
			},
			Correct: domain.LabelC,
			Hint:    "Foi no século XIX, às margens do Ipiranga.",
			Subject: "historia",
			Level:   "fundamental",
		},
	}
}
