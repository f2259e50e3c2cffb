package inference

import (
	"inferkit/domain/stats"
)

// LargeSampleThreshold is the sample size at which the normal approximation
// replaces Student's T.
const LargeSampleThreshold = 30

// SelectDistribution chooses the sampling distribution for a univariate test:
// Z for n >= 30, otherwise Student's T with n-1 degrees of freedom. The
// returned degrees of freedom are 0 for the Z branch. The T branch needs
// n >= 2 to have a valid distribution; callers validate that before drawing
// quantiles.
func SelectDistribution(n int) (stats.DistributionKind, int) {
	if n >= LargeSampleThreshold {
		return stats.DistZ, 0
	}
	return stats.DistT, n - 1
}
