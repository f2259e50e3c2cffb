package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"inferkit/domain/core"
	"inferkit/domain/stats"
	"inferkit/internal"
	"inferkit/ports"
)

// sweepConcurrency bounds how many columns are evaluated at once
const sweepConcurrency = 4

// BatchService evaluates one hypothesis across many sample columns from a
// data source, recording one artifact per column plus a sweep manifest.
type BatchService struct {
	reader   ports.SampleReaderPort
	analysis *AnalysisService
	ledger   ports.LedgerWriterPort
	logger   *internal.Logger
}

// NewBatchService creates a batch sweep service
func NewBatchService(reader ports.SampleReaderPort, analysis *AnalysisService, ledger ports.LedgerWriterPort) *BatchService {
	return &BatchService{
		reader:   reader,
		analysis: analysis,
		ledger:   ledger,
		logger:   internal.NewDefaultLogger(),
	}
}

// SweepRequest defines a hypothesis test swept over named columns. An empty
// Columns slice sweeps every column the source exposes.
type SweepRequest struct {
	Columns  []string       `json:"columns,omitempty"`
	NullMean *float64       `json:"null_mean,omitempty"`
	Alpha    float64        `json:"alpha"`
	Tail     stats.TailMode `json:"tail"`
}

// ColumnOutcome is the per-column result of a sweep
type ColumnOutcome struct {
	Column     string                      `json:"column"`
	AnalysisID core.AnalysisID             `json:"analysis_id,omitempty"`
	Result     *stats.HypothesisTestResult `json:"result,omitempty"`
	Error      string                      `json:"error,omitempty"`
}

// SweepManifest summarizes a completed sweep
type SweepManifest struct {
	RunID     core.RunID `json:"run_id"`
	Columns   int        `json:"columns"`
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Rejected  int        `json:"rejected"`
	RuntimeMs int64      `json:"runtime_ms"`
	Alpha     float64    `json:"alpha"`
}

// SweepResult is the complete sweep output
type SweepResult struct {
	Manifest SweepManifest   `json:"manifest"`
	Outcomes []ColumnOutcome `json:"outcomes"`
}

// RunSweep tests every requested column concurrently. A column that fails
// validation is reported in its outcome and does not abort the sweep.
func (s *BatchService) RunSweep(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	startTime := time.Now()

	columns := req.Columns
	if len(columns) == 0 {
		all, err := s.reader.Columns(ctx)
		if err != nil {
			return nil, err
		}
		columns = all
	}

	runID := core.RunID(core.NewID())
	outcomes := make([]ColumnOutcome, len(columns))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for i, column := range columns {
		i, column := i, column
		g.Go(func() error {
			outcome := s.testColumn(gctx, runID, column, req)
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifest := SweepManifest{
		RunID:     runID,
		Columns:   len(columns),
		RuntimeMs: time.Since(startTime).Milliseconds(),
		Alpha:     req.Alpha,
	}
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			manifest.Failed++
			continue
		}
		manifest.Succeeded++
		if outcome.Result.RejectNull {
			manifest.Rejected++
		}
	}

	artifact := core.Artifact{
		ID:        core.NewID(),
		Kind:      core.ArtifactSweepManifest,
		Payload:   manifest,
		CreatedAt: core.Now(),
	}
	if err := s.ledger.StoreArtifact(ctx, runID.String(), artifact); err != nil {
		return nil, err
	}

	s.logger.Info("[BatchService] Sweep %s: %d columns, %d succeeded, %d rejected in %dms",
		runID, manifest.Columns, manifest.Succeeded, manifest.Rejected, manifest.RuntimeMs)
	return &SweepResult{Manifest: manifest, Outcomes: outcomes}, nil
}

// testColumn reads one column and runs the hypothesis test against it
func (s *BatchService) testColumn(ctx context.Context, runID core.RunID, column string, req SweepRequest) ColumnOutcome {
	outcome := ColumnOutcome{Column: column}

	values, err := s.reader.ReadColumn(ctx, column)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	resp, err := s.analysis.RunHypothesisTest(ctx, HypothesisRequest{
		Sample:   SampleInput{RawValues: values},
		NullMean: req.NullMean,
		Alpha:    req.Alpha,
		Tail:     req.Tail,
		RunID:    runID,
	})
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.AnalysisID = resp.AnalysisID
	outcome.Result = resp.Result
	return outcome
}
