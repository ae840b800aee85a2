package terminal

import (
	"fmt"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

// BadgeKey selects the help badge shown for a kind at a remaining-lives count.
type BadgeKey struct {
	Kind  domain.HelpKind
	Lives int
}

// BadgeTable resolves help badges. Every help kind has a fallback badge used
// when no entry exists for the current lives count.
type BadgeTable struct {
	entries  map[BadgeKey]string
	fallback map[domain.HelpKind]string
}

// NewBadgeTable validates that every help kind has a fallback.
func NewBadgeTable(entries map[BadgeKey]string, fallback map[domain.HelpKind]string) (*BadgeTable, error) {
	for _, kind := range domain.HelpKinds {
		if _, ok := fallback[kind]; !ok {
			return nil, fmt.Errorf("badge table: no fallback for help %q", kind)
		}
	}
	for key := range entries {
		if _, ok := fallback[key.Kind]; !ok {
			return nil, fmt.Errorf("badge table: unknown help %q", key.Kind)
		}
	}
	return &BadgeTable{entries: entries, fallback: fallback}, nil
}

// Badge returns the badge for kind at lives.
func (t *BadgeTable) Badge(kind domain.HelpKind, lives int) string {
	if badge, ok := t.entries[BadgeKey{Kind: kind, Lives: lives}]; ok {
		return badge
	}
	return t.fallback[kind]
}

// DefaultBadges shows one filled dot per remaining life.
func DefaultBadges() *BadgeTable {
	names := map[domain.HelpKind]string{
		domain.HelpSkip:      "[s] Skip",
		domain.HelpHint:      "[h] Hint",
		domain.HelpEliminate: "[e] Eliminate",
	}
	dots := map[int]string{3: "●●●", 2: "●●○", 1: "●○○"}

	entries := make(map[BadgeKey]string)
	fallback := make(map[domain.HelpKind]string)
	for kind, name := range names {
		for lives, d := range dots {
			entries[BadgeKey{Kind: kind, Lives: lives}] = name + " " + d
		}
		fallback[kind] = name + " ○○○"
	}
	table, err := NewBadgeTable(entries, fallback)
	if err != nil {
		panic(err)
	}
	return table
}
