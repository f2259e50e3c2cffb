package inference

import (
	"math"

	"inferkit/domain/core"
	"inferkit/domain/stats"
)

// PlanSampleSize inverts the margin-of-error formula MoE = critical * s / sqrt(n)
// to n = (critical * s / MoE)^2, rounded up so the achieved margin of error
// never exceeds the target.
func PlanSampleSize(stdDev, targetMoE, criticalValue float64) (*stats.SampleSizePlan, error) {
	if targetMoE <= 0 {
		return nil, core.NewTargetError(targetMoE)
	}
	if stdDev <= 0 {
		return nil, core.NewVarianceError(stdDev)
	}
	if criticalValue <= 0 {
		return nil, core.NewDegenerateInputError("critical value must be positive")
	}

	exact := criticalValue * stdDev / targetMoE
	n := int(math.Ceil(exact * exact))
	if n < 1 {
		n = 1
	}

	return &stats.SampleSizePlan{
		RequiredN:         n,
		AssumedStdDev:     stdDev,
		TargetMarginOfErr: targetMoE,
		AchievedMarginErr: criticalValue * stdDev / math.Sqrt(float64(n)),
		CriticalValue:     criticalValue,
	}, nil
}

// PlanSampleSizeAtConfidence derives the critical value from the normal
// quantile at the requested confidence level before inverting. Planning uses Z
// throughout since n is the unknown being solved for.
func PlanSampleSizeAtConfidence(stdDev, targetMoE, confidence float64) (*stats.SampleSizePlan, error) {
	if confidence <= 0 || confidence >= 1 {
		return nil, core.NewLevelError("confidence", confidence)
	}

	critical := NewDistributions().NormalQuantile((1 + confidence) / 2)
	plan, err := PlanSampleSize(stdDev, targetMoE, critical)
	if err != nil {
		return nil, err
	}
	plan.Confidence = confidence
	return plan, nil
}
