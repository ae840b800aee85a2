package terminal

import (
	"strings"
	"testing"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

func TestBadgeTableRequiresFallback(t *testing.T) {
	_, err := NewBadgeTable(nil, map[domain.HelpKind]string{
		domain.HelpSkip: "skip",
		domain.HelpHint: "hint",
	})
	if err == nil || !strings.Contains(err.Error(), "eliminate") {
		t.Fatalf("expected missing eliminate fallback error, got %v", err)
	}

	_, err = NewBadgeTable(map[BadgeKey]string{{Kind: "phone", Lives: 1}: "call"}, map[domain.HelpKind]string{
		domain.HelpSkip: "skip", domain.HelpHint: "hint", domain.HelpEliminate: "eliminate",
	})
	if err == nil {
		t.Fatalf("expected unknown help error")
	}
}

func TestBadgeLookupFallsBack(t *testing.T) {
	table := DefaultBadges()
	if got := table.Badge(domain.HelpSkip, 3); got != "[s] Skip ●●●" {
		t.Fatalf("unexpected badge %q", got)
	}
	if got := table.Badge(domain.HelpHint, 1); got != "[h] Hint ●○○" {
		t.Fatalf("unexpected badge %q", got)
	}
	if got := table.Badge(domain.HelpEliminate, 0); got != "[e] Eliminate ○○○" {
		t.Fatalf("expected fallback badge, got %q", got)
	}
	if got := table.Badge(domain.HelpEliminate, 9); got != "[e] Eliminate ○○○" {
		t.Fatalf("expected fallback badge, got %q", got)
	}
}
