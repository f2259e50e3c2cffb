package ports

import (
	"context"

	"inferkit/domain/core"
)

// LedgerWriterPort provides append-only write access to analysis artifacts.
// This is the only way results leave the engine boundary; nothing is updated
// in place.
type LedgerWriterPort interface {
	StoreArtifact(ctx context.Context, runID string, artifact core.Artifact) error
}

// LedgerReaderPort provides read-only access to stored artifacts for the
// history API and report rendering.
type LedgerReaderPort interface {
	ListArtifacts(ctx context.Context, filters ArtifactFilters) ([]core.Artifact, error)
	GetArtifact(ctx context.Context, artifactID core.ID) (*core.Artifact, error)
	GetArtifactsByRun(ctx context.Context, runID core.RunID) ([]core.Artifact, error)
}

// ArtifactFilters for querying artifacts
type ArtifactFilters struct {
	RunID  *core.RunID
	Kind   *core.ArtifactKind
	Limit  int
	Offset int
}

// LedgerPort combines read and write access
type LedgerPort interface {
	LedgerWriterPort
	LedgerReaderPort
}
