package testkit

import (
	"context"
	"sort"
	"sync"

	"inferkit/domain/core"
	"inferkit/ports"
)

// InMemoryLedger is an append-only artifact ledger for development and tests
type InMemoryLedger struct {
	mu        sync.RWMutex
	artifacts []core.Artifact
	byID      map[core.ID]int
	runs      map[string][]core.ID
}

// NewInMemoryLedger creates an empty in-memory ledger
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		byID: make(map[core.ID]int),
		runs: make(map[string][]core.ID),
	}
}

// StoreArtifact appends one artifact
func (l *InMemoryLedger) StoreArtifact(_ context.Context, runID string, artifact core.Artifact) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.byID[artifact.ID] = len(l.artifacts)
	l.artifacts = append(l.artifacts, artifact)
	l.runs[runID] = append(l.runs[runID], artifact.ID)
	return nil
}

// ListArtifacts returns artifacts matching the filters, newest first
func (l *InMemoryLedger) ListArtifacts(_ context.Context, filters ports.ArtifactFilters) ([]core.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []core.Artifact
	for _, artifact := range l.artifacts {
		if filters.Kind != nil && artifact.Kind != *filters.Kind {
			continue
		}
		if filters.RunID != nil && !l.inRun(filters.RunID.String(), artifact.ID) {
			continue
		}
		matched = append(matched, artifact)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[j].CreatedAt.Before(matched[i].CreatedAt)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched, nil
}

// GetArtifact returns one artifact by ID
func (l *InMemoryLedger) GetArtifact(_ context.Context, artifactID core.ID) (*core.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.byID[artifactID]
	if !ok {
		return nil, core.NewNotFoundError("artifact", artifactID.String())
	}
	artifact := l.artifacts[idx]
	return &artifact, nil
}

// GetArtifactsByRun returns every artifact stored under a run, in append order
func (l *InMemoryLedger) GetArtifactsByRun(_ context.Context, runID core.RunID) ([]core.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := l.runs[runID.String()]
	artifacts := make([]core.Artifact, 0, len(ids))
	for _, id := range ids {
		artifacts = append(artifacts, l.artifacts[l.byID[id]])
	}
	return artifacts, nil
}

func (l *InMemoryLedger) inRun(runID string, artifactID core.ID) bool {
	for _, id := range l.runs[runID] {
		if id == artifactID {
			return true
		}
	}
	return false
}

// FixtureReader serves fixed named columns, standing in for a spreadsheet
type FixtureReader struct {
	columns map[string][]float64
	order   []string
}

// NewFixtureReader creates a reader over the default demo columns
func NewFixtureReader() *FixtureReader {
	return &FixtureReader{
		order: []string{"wait_minutes", "batch_size", "defect_rate"},
		columns: map[string][]float64{
			// The calculator's stock raw-data example.
			"wait_minutes": {48, 52, 45, 55, 50, 49, 51},
			"batch_size":   {10, 20, 30, 40, 50, 60, 70},
			"defect_rate":  {1.1, 1.9, 3.2, 3.8, 5.1, 5.9, 7.2},
		},
	}
}

// NewFixtureReaderWith creates a reader over caller-supplied columns
func NewFixtureReaderWith(columns map[string][]float64) *FixtureReader {
	order := make([]string, 0, len(columns))
	for name := range columns {
		order = append(order, name)
	}
	sort.Strings(order)
	return &FixtureReader{columns: columns, order: order}
}

// Columns lists the fixture column names
func (r *FixtureReader) Columns(_ context.Context) ([]string, error) {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out, nil
}

// ReadColumn returns a copy of one fixture column
func (r *FixtureReader) ReadColumn(_ context.Context, name string) ([]float64, error) {
	values, ok := r.columns[name]
	if !ok {
		return nil, core.NewNotFoundError("column", name)
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}
