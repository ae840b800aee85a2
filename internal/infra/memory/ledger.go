package memory

import (
	"context"
	"sync"
)

// Ledger keeps scores in process memory. It implements app.Ledger.
type Ledger struct {
	mu     sync.Mutex
	scores map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{scores: make(map[string]int)}
}

func (l *Ledger) Add(_ context.Context, playerID string, delta int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scores[playerID] += delta
	return nil
}

func (l *Ledger) Scores(_ context.Context) (map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int, len(l.scores))
	for player, score := range l.scores {
		out[player] = score
	}
	return out, nil
}
