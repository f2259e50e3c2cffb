package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"inferkit/domain/core"
	"inferkit/internal/errors"
	"inferkit/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_artifacts (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_artifacts_run ON analysis_artifacts (run_id);
CREATE INDEX IF NOT EXISTS idx_analysis_artifacts_kind ON analysis_artifacts (kind);
`

// Ledger is the Postgres-backed append-only artifact ledger
type Ledger struct {
	db *sqlx.DB
}

// Connect opens the database and ensures the ledger schema exists
func Connect(url string) (*Ledger, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	ledger := &Ledger{db: db}
	if err := ledger.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return ledger, nil
}

// NewLedger wraps an existing connection without touching the schema
func NewLedger(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

// Close releases the underlying connection pool
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) ensureSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to create ledger schema")
	}
	return nil
}

// artifactRow is the row shape of analysis_artifacts
type artifactRow struct {
	ID        string    `db:"id"`
	RunID     string    `db:"run_id"`
	Kind      string    `db:"kind"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

func (row artifactRow) toArtifact() (core.Artifact, error) {
	var payload interface{}
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return core.Artifact{}, errors.Wrap(err, "failed to decode artifact payload")
	}
	return core.Artifact{
		ID:        core.ID(row.ID),
		Kind:      core.ArtifactKind(row.Kind),
		Payload:   payload,
		CreatedAt: core.NewTimestamp(row.CreatedAt),
	}, nil
}

// StoreArtifact appends one artifact to the ledger
func (l *Ledger) StoreArtifact(ctx context.Context, runID string, artifact core.Artifact) error {
	payload, err := json.Marshal(artifact.Payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode artifact payload")
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO analysis_artifacts (id, run_id, kind, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		artifact.ID.String(), runID, string(artifact.Kind), payload, artifact.CreatedAt.Time())
	if err != nil {
		return errors.Wrap(err, "failed to store artifact")
	}
	return nil
}

// ListArtifacts queries artifacts with optional run/kind filters, newest first
func (l *Ledger) ListArtifacts(ctx context.Context, filters ports.ArtifactFilters) ([]core.Artifact, error) {
	query := `SELECT id, run_id, kind, payload, created_at FROM analysis_artifacts WHERE 1=1`
	args := []interface{}{}

	if filters.RunID != nil {
		args = append(args, filters.RunID.String())
		query += ` AND run_id = $` + itoa(len(args))
	}
	if filters.Kind != nil {
		args = append(args, string(*filters.Kind))
		query += ` AND kind = $` + itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += ` LIMIT $` + itoa(len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	var rows []artifactRow
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list artifacts")
	}

	artifacts := make([]core.Artifact, 0, len(rows))
	for _, row := range rows {
		artifact, err := row.toArtifact()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

// GetArtifact fetches one artifact by ID
func (l *Ledger) GetArtifact(ctx context.Context, artifactID core.ID) (*core.Artifact, error) {
	var row artifactRow
	err := l.db.GetContext(ctx, &row,
		`SELECT id, run_id, kind, payload, created_at FROM analysis_artifacts WHERE id = $1`,
		artifactID.String())
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("artifact", artifactID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get artifact")
	}

	artifact, err := row.toArtifact()
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// GetArtifactsByRun fetches every artifact recorded under a run
func (l *Ledger) GetArtifactsByRun(ctx context.Context, runID core.RunID) ([]core.Artifact, error) {
	id := runID
	return l.ListArtifacts(ctx, ports.ArtifactFilters{RunID: &id})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
