package app

import (
	"context"

	"inferkit/domain/core"
	"inferkit/domain/stats"
	"inferkit/internal"
	"inferkit/internal/inference"
	"inferkit/ports"
)

// AnalysisService runs engine computations and records each result as an
// artifact in the ledger. The engine itself stays pure; this is the only layer
// with side effects.
type AnalysisService struct {
	ledger ports.LedgerWriterPort
	logger *internal.Logger
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(ledger ports.LedgerWriterPort) *AnalysisService {
	return &AnalysisService{
		ledger: ledger,
		logger: internal.NewDefaultLogger(),
	}
}

// SampleInput carries either summary statistics or raw values. When RawValues
// is non-empty the summary fields are derived from it and any caller-supplied
// values are ignored.
type SampleInput struct {
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
	N         int       `json:"n"`
	RawValues []float64 `json:"raw_values,omitempty"`
}

// Resolve turns the input into a validated SampleSummary
func (in SampleInput) Resolve() (stats.SampleSummary, error) {
	if len(in.RawValues) > 0 {
		return inference.Summarize(in.RawValues)
	}
	sample := stats.SampleSummary{Mean: in.Mean, StdDev: in.StdDev, N: in.N}
	if err := sample.Validate(); err != nil {
		return stats.SampleSummary{}, err
	}
	return sample, nil
}

// IntervalRequest asks for a confidence interval around the sample mean
type IntervalRequest struct {
	Sample     SampleInput `json:"sample"`
	Confidence float64     `json:"confidence"`
	RunID      core.RunID  `json:"run_id,omitempty"`
}

// IntervalResponse is the recorded interval estimate
type IntervalResponse struct {
	AnalysisID core.AnalysisID         `json:"analysis_id"`
	Sample     stats.SampleSummary     `json:"sample"`
	Estimate   *stats.IntervalEstimate `json:"estimate"`
}

// ComputeInterval evaluates and records a confidence interval
func (s *AnalysisService) ComputeInterval(ctx context.Context, req IntervalRequest) (*IntervalResponse, error) {
	sample, err := req.Sample.Resolve()
	if err != nil {
		return nil, err
	}

	estimate, err := inference.ComputeInterval(sample, req.Confidence)
	if err != nil {
		return nil, err
	}

	resp := &IntervalResponse{AnalysisID: newAnalysisID(), Sample: sample, Estimate: estimate}
	return resp, s.record(ctx, req.RunID, core.ArtifactInterval, resp.AnalysisID, resp)
}

// HypothesisRequest asks for a one-sample Z/T test. NullMean defaults to the
// sample mean when omitted, matching the calculator's clean-start behavior.
type HypothesisRequest struct {
	Sample   SampleInput    `json:"sample"`
	NullMean *float64       `json:"null_mean,omitempty"`
	Alpha    float64        `json:"alpha"`
	Tail     stats.TailMode `json:"tail"`
	RunID    core.RunID     `json:"run_id,omitempty"`
}

// HypothesisResponse is the recorded test outcome
type HypothesisResponse struct {
	AnalysisID core.AnalysisID             `json:"analysis_id"`
	Sample     stats.SampleSummary         `json:"sample"`
	Result     *stats.HypothesisTestResult `json:"result"`
}

// RunHypothesisTest evaluates and records a hypothesis test
func (s *AnalysisService) RunHypothesisTest(ctx context.Context, req HypothesisRequest) (*HypothesisResponse, error) {
	sample, err := req.Sample.Resolve()
	if err != nil {
		return nil, err
	}

	nullMean := sample.Mean
	if req.NullMean != nil {
		nullMean = *req.NullMean
	}
	tail := req.Tail
	if tail == "" {
		tail = stats.TailTwoSided
	}

	result, err := inference.RunHypothesisTest(sample, nullMean, req.Alpha, tail)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[AnalysisService] %s test: statistic=%.4f p=%.4f reject=%v",
		result.Distribution, result.TestStatistic, result.PValue, result.RejectNull)

	resp := &HypothesisResponse{AnalysisID: newAnalysisID(), Sample: sample, Result: result}
	return resp, s.record(ctx, req.RunID, core.ArtifactHypothesisTest, resp.AnalysisID, resp)
}

// SampleSizeRequest asks how many observations hit a target margin of error.
// Either Confidence or CriticalValue must be set; CriticalValue wins when both
// are present.
type SampleSizeRequest struct {
	StdDev        float64    `json:"std_dev"`
	TargetMoE     float64    `json:"target_margin_of_error"`
	Confidence    float64    `json:"confidence,omitempty"`
	CriticalValue float64    `json:"critical_value,omitempty"`
	RunID         core.RunID `json:"run_id,omitempty"`
}

// SampleSizeResponse is the recorded plan
type SampleSizeResponse struct {
	AnalysisID core.AnalysisID       `json:"analysis_id"`
	Plan       *stats.SampleSizePlan `json:"plan"`
}

// PlanSampleSize evaluates and records a sample-size plan
func (s *AnalysisService) PlanSampleSize(ctx context.Context, req SampleSizeRequest) (*SampleSizeResponse, error) {
	var plan *stats.SampleSizePlan
	var err error
	if req.CriticalValue > 0 {
		plan, err = inference.PlanSampleSize(req.StdDev, req.TargetMoE, req.CriticalValue)
	} else {
		plan, err = inference.PlanSampleSizeAtConfidence(req.StdDev, req.TargetMoE, req.Confidence)
	}
	if err != nil {
		return nil, err
	}

	resp := &SampleSizeResponse{AnalysisID: newAnalysisID(), Plan: plan}
	return resp, s.record(ctx, req.RunID, core.ArtifactSamplePlan, resp.AnalysisID, resp)
}

// RegressionRequest asks for an OLS fit of Y on X, with optional new x values
// to predict at.
type RegressionRequest struct {
	X         []float64  `json:"x"`
	Y         []float64  `json:"y"`
	PredictAt []float64  `json:"predict_at,omitempty"`
	RunID     core.RunID `json:"run_id,omitempty"`
}

// RegressionResponse is the recorded fit with any requested predictions
type RegressionResponse struct {
	AnalysisID core.AnalysisID      `json:"analysis_id"`
	Fit        *stats.RegressionFit `json:"fit"`
	Predicted  []float64            `json:"predicted,omitempty"`
}

// FitRegression evaluates and records a bivariate OLS fit
func (s *AnalysisService) FitRegression(ctx context.Context, req RegressionRequest) (*RegressionResponse, error) {
	fit, err := inference.FitRegression(req.X, req.Y)
	if err != nil {
		return nil, err
	}

	resp := &RegressionResponse{AnalysisID: newAnalysisID(), Fit: fit}
	if len(req.PredictAt) > 0 {
		resp.Predicted = inference.Predict(fit, req.PredictAt)
	}
	return resp, s.record(ctx, req.RunID, core.ArtifactRegression, resp.AnalysisID, resp)
}

func newAnalysisID() core.AnalysisID {
	return core.AnalysisID(core.NewID())
}

// record appends a result artifact under the given run. A request without a
// run gets a single-analysis run keyed by the artifact ID.
func (s *AnalysisService) record(ctx context.Context, runID core.RunID, kind core.ArtifactKind, id core.AnalysisID, payload interface{}) error {
	if runID.String() == "" {
		runID = core.RunID(id)
	}

	artifact := core.Artifact{
		ID:        core.ID(id),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: core.Now(),
	}
	return s.ledger.StoreArtifact(ctx, runID.String(), artifact)
}
