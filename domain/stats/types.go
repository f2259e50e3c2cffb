package stats

import (
	"math"

	"inferkit/domain/core"
)

// ============================================================================
// TYPE DEFINITIONS
// ============================================================================

// DistributionKind identifies the sampling distribution selected for a test
type DistributionKind string

const (
	// DistZ is the standard normal, used for large samples (n >= 30)
	DistZ DistributionKind = "z"
	// DistT is Student's T with n-1 degrees of freedom, used for small samples
	DistT DistributionKind = "t"
)

// TailMode selects the alternative hypothesis direction
type TailMode string

const (
	TailTwoSided TailMode = "two_sided" // H1: mean != mu0
	TailLeft     TailMode = "left"      // H1: mean < mu0
	TailRight    TailMode = "right"     // H1: mean > mu0
)

// Valid reports whether the tail mode is one of the known values
func (tm TailMode) Valid() bool {
	switch tm {
	case TailTwoSided, TailLeft, TailRight:
		return true
	}
	return false
}

// ============================================================================
// VALUE STRUCTS (produced fresh per invocation, no lifecycle)
// ============================================================================

// SampleSummary describes a univariate sample by its summary statistics.
// RawValues is present only when the caller supplied raw data; all inference
// runs off Mean, StdDev and N.
// INVARIANTS:
// - N >= 1
// - StdDev >= 0 (sample standard deviation, ddof=1 when derived from raw data)
type SampleSummary struct {
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
	N         int       `json:"n"`
	RawValues []float64 `json:"raw_values,omitempty"`
}

// Validate checks the SampleSummary invariants
func (s SampleSummary) Validate() error {
	if s.N < 1 {
		return core.NewSampleSizeError(s.N, 1)
	}
	if s.StdDev < 0 {
		return core.NewVarianceError(s.StdDev)
	}
	return nil
}

// StandardError returns StdDev / sqrt(N). Callers must Validate first.
func (s SampleSummary) StandardError() float64 {
	return s.StdDev / sqrtN(s.N)
}

func sqrtN(n int) float64 {
	return math.Sqrt(float64(n))
}

// ConfidenceInterval is a symmetric interval around the sample mean
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns the full interval width
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// Contains reports whether v lies inside the interval (inclusive)
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

// IntervalEstimate is a confidence interval together with the inputs that
// produced it, mirroring what the calculator displays alongside the bounds.
type IntervalEstimate struct {
	Mean           float64            `json:"mean"`
	StandardError  float64            `json:"standard_error"`
	CriticalValue  float64            `json:"critical_value"`
	MarginOfError  float64            `json:"margin_of_error"`
	Confidence     float64            `json:"confidence"`
	Distribution   DistributionKind   `json:"distribution"`
	DegreesFreedom int                `json:"degrees_of_freedom,omitempty"`
	Interval       ConfidenceInterval `json:"interval"`
}

// HypothesisTestResult is the outcome of a one-sample Z or T test
type HypothesisTestResult struct {
	TestStatistic  float64            `json:"test_statistic"`
	PValue         float64            `json:"p_value"`
	RejectNull     bool               `json:"reject_null"`
	Interval       ConfidenceInterval `json:"confidence_interval"`
	Distribution   DistributionKind   `json:"distribution"`
	DegreesFreedom int                `json:"degrees_of_freedom,omitempty"`
	StandardError  float64            `json:"standard_error"`
	CriticalValue  float64            `json:"critical_value"`
	NullMean       float64            `json:"null_mean"`
	Alpha          float64            `json:"alpha"`
	Tail           TailMode           `json:"tail"`
}

// RegressionFit is a bivariate OLS fit with its derived metrics
type RegressionFit struct {
	Slope         float64   `json:"slope"`
	Intercept     float64   `json:"intercept"`
	StandardError float64   `json:"standard_error"` // standard error of the slope
	R             float64   `json:"r"`
	RSquared      float64   `json:"r_squared"`
	Residuals     []float64 `json:"residuals"`
	N             int       `json:"n"`
}

// PredictAt applies the fitted line to a single x value
func (f RegressionFit) PredictAt(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// SampleSizePlan is the output of the margin-of-error inversion
type SampleSizePlan struct {
	RequiredN         int     `json:"required_n"`
	AssumedStdDev     float64 `json:"assumed_std_dev"`
	TargetMarginOfErr float64 `json:"target_margin_of_error"`
	AchievedMarginErr float64 `json:"achieved_margin_of_error"`
	CriticalValue     float64 `json:"critical_value"`
	Confidence        float64 `json:"confidence,omitempty"`
}
