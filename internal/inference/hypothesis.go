package inference

import (
	"inferkit/domain/core"
	"inferkit/domain/stats"
)

// ComputeInterval builds the symmetric confidence interval around the sample
// mean: mean +/- critical * (stdDev / sqrt(n)), with the critical value drawn
// from the distribution the sample size selects.
func ComputeInterval(sample stats.SampleSummary, confidence float64) (*stats.IntervalEstimate, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	if sample.N < 2 {
		// The T branch needs at least one degree of freedom.
		return nil, core.NewSampleSizeError(sample.N, 2)
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, core.NewLevelError("confidence", confidence)
	}

	kind, df := SelectDistribution(sample.N)
	dist := NewDistributions()

	se := sample.StandardError()
	critical := dist.CriticalValue(kind, confidence, df)
	moe := critical * se

	return &stats.IntervalEstimate{
		Mean:           sample.Mean,
		StandardError:  se,
		CriticalValue:  critical,
		MarginOfError:  moe,
		Confidence:     confidence,
		Distribution:   kind,
		DegreesFreedom: df,
		Interval: stats.ConfidenceInterval{
			Lower: sample.Mean - moe,
			Upper: sample.Mean + moe,
		},
	}, nil
}

// RunHypothesisTest evaluates a one-sample test of the sample mean against
// nullMean at significance level alpha. The distribution follows the sample
// size rule (Z for n >= 30, T with n-1 df otherwise); the confidence interval
// reported alongside is the central 1-alpha interval.
func RunHypothesisTest(sample stats.SampleSummary, nullMean, alpha float64, tail stats.TailMode) (*stats.HypothesisTestResult, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	if sample.N < 2 {
		return nil, core.NewSampleSizeError(sample.N, 2)
	}
	if sample.StdDev == 0 {
		// The test statistic divides by the standard error.
		return nil, core.NewVarianceError(sample.StdDev)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, core.NewLevelError("alpha", alpha)
	}
	if !tail.Valid() {
		return nil, core.NewDegenerateInputError("unknown tail mode " + string(tail))
	}

	kind, df := SelectDistribution(sample.N)
	dist := NewDistributions()

	se := sample.StandardError()
	statistic := (sample.Mean - nullMean) / se
	pValue := dist.PValue(kind, statistic, df, tail)

	confidence := 1 - alpha
	critical := dist.CriticalValue(kind, confidence, df)
	moe := critical * se

	return &stats.HypothesisTestResult{
		TestStatistic:  statistic,
		PValue:         pValue,
		RejectNull:     pValue <= alpha,
		Distribution:   kind,
		DegreesFreedom: df,
		StandardError:  se,
		CriticalValue:  critical,
		NullMean:       nullMean,
		Alpha:          alpha,
		Tail:           tail,
		Interval: stats.ConfidenceInterval{
			Lower: sample.Mean - moe,
			Upper: sample.Mean + moe,
		},
	}, nil
}
