package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestLedgerReadModifyWrite(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	mr.HSet("ranking", "ana", "700")
	ledger := NewLedger(newClient(mr), "")

	if err := ledger.Add(ctx, "teste", 1000); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ledger.Add(ctx, "teste", 2000); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := mr.HGet("ranking", "teste"); got != "3000" {
		t.Fatalf("expected 3000 stored, got %q", got)
	}

	scores, err := ledger.Scores(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if scores["ana"] != 700 || scores["teste"] != 3000 {
		t.Fatalf("unexpected scores %+v", scores)
	}
}

func TestLedgerRejectsCorruptEntry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	mr.HSet("ranking", "teste", "lots")
	ledger := NewLedger(newClient(mr), "ranking")
	if err := ledger.Add(context.Background(), "teste", 1000); err == nil {
		t.Fatalf("expected error for corrupt entry")
	}
}
