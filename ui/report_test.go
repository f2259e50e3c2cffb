package ui

import (
	"context"
	"strings"
	"testing"

	"inferkit/app"
	"inferkit/domain/core"
	"inferkit/domain/stats"
	"inferkit/internal/testkit"
)

func TestBuildArtifactMarkdown_Hypothesis(t *testing.T) {
	ledger := testkit.NewInMemoryLedger()
	svc := app.NewAnalysisService(ledger)
	ctx := context.Background()

	mu0 := 95.0
	resp, err := svc.RunHypothesisTest(ctx, app.HypothesisRequest{
		Sample:   app.SampleInput{Mean: 100, StdDev: 15, N: 25},
		NullMean: &mu0,
		Alpha:    0.05,
		Tail:     stats.TailTwoSided,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	artifact, err := ledger.GetArtifact(ctx, core.ID(resp.AnalysisID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	md, err := BuildArtifactMarkdown(artifact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"T-Test", "df=24", "Fail to reject"} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}

	html := string(RenderHTML(md))
	if !strings.Contains(html, "<h1") {
		t.Errorf("expected rendered heading, got:\n%s", html)
	}
}

func TestBuildArtifactMarkdown_GenericFallback(t *testing.T) {
	artifact := &core.Artifact{
		ID:        core.NewID(),
		Kind:      core.ArtifactSweepManifest,
		Payload:   map[string]interface{}{"columns": 3},
		CreatedAt: core.Now(),
	}

	md, err := BuildArtifactMarkdown(artifact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(md, "```json") {
		t.Errorf("expected payload dump in generic report:\n%s", md)
	}
}
