package memory

import (
	"context"
	"testing"
)

func TestLedgerAccumulates(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	if err := ledger.Add(ctx, "teste", 1000); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ledger.Add(ctx, "teste", 2000); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ledger.Add(ctx, "ana", 500); err != nil {
		t.Fatalf("add: %v", err)
	}

	scores, err := ledger.Scores(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if scores["teste"] != 3000 || scores["ana"] != 500 {
		t.Fatalf("unexpected scores %+v", scores)
	}

	scores["teste"] = 0
	again, _ := ledger.Scores(ctx)
	if again["teste"] != 3000 {
		t.Fatalf("scores map shares state with ledger")
	}
}
