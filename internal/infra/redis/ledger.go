package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultLedgerKey is the hash holding player scores.
const DefaultLedgerKey = "ranking"

// Ledger stores scores in a Redis hash. Add reads the whole hash, modifies it
// and writes every field back, so concurrent writers are last-writer-wins.
type Ledger struct {
	client *redis.Client
	key    string
}

func NewLedger(client *redis.Client, key string) *Ledger {
	if key == "" {
		key = DefaultLedgerKey
	}
	return &Ledger{client: client, key: key}
}

func (l *Ledger) Add(ctx context.Context, playerID string, delta int) error {
	scores, err := l.Scores(ctx)
	if err != nil {
		return err
	}
	scores[playerID] += delta

	values := make(map[string]interface{}, len(scores))
	for player, score := range scores {
		values[player] = score
	}
	if err := l.client.HSet(ctx, l.key, values).Err(); err != nil {
		return fmt.Errorf("write ranking: %w", err)
	}
	return nil
}

func (l *Ledger) Scores(ctx context.Context) (map[string]int, error) {
	raw, err := l.client.HGetAll(ctx, l.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	scores := make(map[string]int, len(raw))
	for player, value := range raw {
		score, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("ranking entry %q: %w", player, err)
		}
		scores[player] = score
	}
	return scores, nil
}
