package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/sirupsen/logrus"
)

// Game contains the quiz use cases: starting sessions and listing the ranking.
type Game struct {
	questions *QuestionRepository
	ledger    Ledger
	log       logrus.FieldLogger
	playerID  string
	opts      []SessionOption
}

func NewGame(questions *QuestionRepository, ledger Ledger, log logrus.FieldLogger, playerID string, opts ...SessionOption) *Game {
	if playerID == "" {
		playerID = DefaultPlayerID
	}
	return &Game{
		questions: questions,
		ledger:    ledger,
		log:       log,
		playerID:  playerID,
		opts:      opts,
	}
}

// PlayerID returns the identity credited by new sessions.
func (g *Game) PlayerID() string { return g.playerID }

// Start loads a question sequence and opens a session on it. Store failures
// never surface here; the repository falls back to built-in questions.
func (g *Game) Start(ctx context.Context, level string, subjects []string) *Session {
	questions := g.questions.Load(ctx, level, subjects)
	opts := make([]SessionOption, 0, len(g.opts)+2)
	opts = append(opts, WithLogger(g.log), WithPlayerID(g.playerID))
	opts = append(opts, g.opts...)
	return NewSession(questions, g.ledger, opts...)
}

// Ranking returns up to limit entries sorted by score desc, then player asc.
// A limit <= 0 returns every entry. An empty ledger yields the configured
// player with zero points.
func (g *Game) Ranking(ctx context.Context, limit int) (domain.Ranking, error) {
	scores, err := g.ledger.Scores(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	if len(scores) == 0 {
		return domain.Ranking{{PlayerID: g.playerID, Score: 0}}, nil
	}
	return SortRanking(scores, limit), nil
}

// SortRanking orders a ledger mapping for display.
func SortRanking(scores map[string]int, limit int) domain.Ranking {
	entries := make(domain.Ranking, 0, len(scores))
	for player, score := range scores {
		entries = append(entries, domain.LedgerEntry{PlayerID: player, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
