package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLedgerPath matches the desktop game's ranking file.
const DefaultLedgerPath = "ranking_data.json"

// Ledger keeps scores in a JSON object {"player": score}. Every Add opens,
// reads, modifies and rewrites the whole file; there is no locking between
// processes, so concurrent writers are last-writer-wins.
type Ledger struct {
	path string
}

func NewLedger(path string) *Ledger {
	if strings.TrimSpace(path) == "" {
		path = DefaultLedgerPath
	}
	return &Ledger{path: path}
}

func (l *Ledger) Add(_ context.Context, playerID string, delta int) error {
	scores, err := l.read()
	if err != nil {
		return err
	}
	scores[playerID] += delta
	return l.write(scores)
}

// Scores returns the stored mapping; a missing file is an empty mapping.
func (l *Ledger) Scores(_ context.Context) (map[string]int, error) {
	return l.read()
}

func (l *Ledger) read() (map[string]int, error) {
	scores := make(map[string]int)
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return scores, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return scores, nil
	}
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", l.path, err)
	}
	return scores, nil
}

// write replaces the file through a temp file in the same directory so a
// crash never leaves a truncated ledger.
func (l *Ledger) write(scores map[string]int) error {
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
