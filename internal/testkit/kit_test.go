package testkit

import (
	"context"
	"testing"
	"time"

	"inferkit/domain/core"
	"inferkit/ports"
)

func storeFixture(t *testing.T, ledger *InMemoryLedger, runID string, kind core.ArtifactKind, at time.Time) core.ID {
	t.Helper()
	id := core.NewID()
	err := ledger.StoreArtifact(context.Background(), runID, core.Artifact{
		ID:        id,
		Kind:      kind,
		Payload:   map[string]interface{}{"ok": true},
		CreatedAt: core.NewTimestamp(at),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return id
}

func TestInMemoryLedger_FilterAndOrder(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()
	base := time.Now()

	storeFixture(t, ledger, "run-a", core.ArtifactInterval, base)
	newest := storeFixture(t, ledger, "run-a", core.ArtifactHypothesisTest, base.Add(2*time.Second))
	storeFixture(t, ledger, "run-b", core.ArtifactHypothesisTest, base.Add(time.Second))

	all, err := ledger.ListArtifacts(ctx, ports.ArtifactFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 artifacts, got %d", len(all))
	}
	if all[0].ID != newest {
		t.Error("expected newest-first ordering")
	}

	kind := core.ArtifactHypothesisTest
	tests, err := ledger.ListArtifacts(ctx, ports.ArtifactFilters{Kind: &kind})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tests) != 2 {
		t.Errorf("expected 2 hypothesis artifacts, got %d", len(tests))
	}

	runA, err := ledger.GetArtifactsByRun(ctx, core.RunID("run-a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runA) != 2 {
		t.Errorf("expected 2 artifacts in run-a, got %d", len(runA))
	}
}

func TestInMemoryLedger_GetArtifact(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	id := storeFixture(t, ledger, "run-a", core.ArtifactRegression, time.Now())

	artifact, err := ledger.GetArtifact(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifact.Kind != core.ArtifactRegression {
		t.Errorf("expected regression artifact, got %s", artifact.Kind)
	}

	if _, err := ledger.GetArtifact(ctx, core.ID("missing")); !core.IsNotFoundError(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestFixtureReader(t *testing.T) {
	reader := NewFixtureReader()
	ctx := context.Background()

	columns, err := reader.Columns(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("expected 3 fixture columns, got %d", len(columns))
	}

	values, err := reader.ReadColumn(ctx, "wait_minutes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 7 {
		t.Errorf("expected 7 values, got %d", len(values))
	}

	// Mutating the returned slice must not affect the fixture.
	values[0] = -1
	again, _ := reader.ReadColumn(ctx, "wait_minutes")
	if again[0] == -1 {
		t.Error("ReadColumn must return a copy")
	}

	if _, err := reader.ReadColumn(ctx, "nope"); !core.IsNotFoundError(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
