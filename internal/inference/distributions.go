package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"inferkit/domain/stats"
)

// Distributions provides unified access to the sampling distributions the
// engine draws critical values and p-values from.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// NormalCDF computes the cumulative distribution function of the standard normal
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the quantile function of the standard normal (inverse CDF)
func (d *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// TCDF computes the CDF of Student's T with the given degrees of freedom
func (d *Distributions) TCDF(x float64, degreesOfFreedom int) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return tDist.CDF(x)
}

// TQuantile computes the quantile of Student's T with the given degrees of freedom
func (d *Distributions) TQuantile(p float64, degreesOfFreedom int) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return tDist.Quantile(p)
}

// CDF dispatches to the selected distribution's CDF. df is only consulted for
// the T distribution.
func (d *Distributions) CDF(kind stats.DistributionKind, x float64, df int) float64 {
	if kind == stats.DistT {
		return d.TCDF(x, df)
	}
	return d.NormalCDF(x)
}

// CriticalValue returns the positive critical value that bounds a symmetric
// central region of the given confidence level, e.g. 1.96 for Z at 0.95.
func (d *Distributions) CriticalValue(kind stats.DistributionKind, confidence float64, df int) float64 {
	p := (1 + confidence) / 2
	if kind == stats.DistT {
		return d.TQuantile(p, df)
	}
	return d.NormalQuantile(p)
}

// PValue computes the p-value of the observed statistic under the selected
// distribution for the given alternative direction.
func (d *Distributions) PValue(kind stats.DistributionKind, statistic float64, df int, tail stats.TailMode) float64 {
	switch tail {
	case stats.TailLeft:
		return d.CDF(kind, statistic, df)
	case stats.TailRight:
		return 1 - d.CDF(kind, statistic, df)
	default:
		return 2 * (1 - d.CDF(kind, math.Abs(statistic), df))
	}
}
