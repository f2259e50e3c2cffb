package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	AnalysisID ID
	RunID      ID
	ColumnKey  ID
)

// String conversions for domain IDs
func (id AnalysisID) String() string { return ID(id).String() }
func (id RunID) String() string      { return ID(id).String() }
func (k ColumnKey) String() string   { return ID(k).String() }

// ParseAnalysisID parses a string into AnalysisID
func ParseAnalysisID(s string) (AnalysisID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("analysis ID cannot be empty")
	}
	return AnalysisID(s), nil
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseColumnKey parses a string into ColumnKey
func ParseColumnKey(s string) (ColumnKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("column key cannot be empty")
	}
	return ColumnKey(s), nil
}

// Artifact represents any recorded output of an analysis
type Artifact struct {
	ID        ID           `json:"id"`
	Kind      ArtifactKind `json:"kind"`
	Payload   interface{}  `json:"payload"`
	CreatedAt Timestamp    `json:"created_at"`
}

// ArtifactKind defines types of artifacts
type ArtifactKind string

const (
	// ArtifactInterval records a confidence-interval computation.
	ArtifactInterval ArtifactKind = "interval"
	// ArtifactHypothesisTest records a Z/T hypothesis test evaluation.
	ArtifactHypothesisTest ArtifactKind = "hypothesis_test"
	// ArtifactRegression records a bivariate OLS fit.
	ArtifactRegression ArtifactKind = "regression"
	// ArtifactSamplePlan records a sample-size optimization.
	ArtifactSamplePlan ArtifactKind = "sample_plan"
	// ArtifactSweepManifest captures audit metadata for a batch sweep (columns, counts, failures).
	ArtifactSweepManifest ArtifactKind = "sweep_manifest"
)
