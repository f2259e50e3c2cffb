package inference

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"inferkit/domain/core"
	"inferkit/domain/stats"
)

// FitRegression computes the closed-form OLS fit of y on x, with Pearson r,
// R^2, residuals, and the standard error of the slope from the residual sum of
// squares.
func FitRegression(x, y []float64) (*stats.RegressionFit, error) {
	if len(x) != len(y) {
		return nil, core.NewLengthMismatchError(len(x), len(y))
	}
	if len(x) < 2 {
		return nil, core.NewSampleSizeError(len(x), 2)
	}

	n := len(x)
	varX := stat.Variance(x, nil)
	if varX == 0 {
		return nil, core.NewDegenerateInputError("zero-variance x, slope undefined")
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		// Constant y: the fit is exact but the correlation is undefined.
		r = 0
	}

	residuals := make([]float64, n)
	rss := 0.0
	for i := range x {
		residuals[i] = y[i] - (slope*x[i] + intercept)
		rss += residuals[i] * residuals[i]
	}

	// SE(slope) = sqrt(RSS / (n-2)) / sqrt(Sxx). With only two points the
	// fit is exact and the error is zero.
	seSlope := 0.0
	if n > 2 {
		sxx := varX * float64(n-1)
		seSlope = math.Sqrt(rss/float64(n-2)) / math.Sqrt(sxx)
	}

	return &stats.RegressionFit{
		Slope:         slope,
		Intercept:     intercept,
		StandardError: seSlope,
		R:             r,
		RSquared:      r * r,
		Residuals:     residuals,
		N:             n,
	}, nil
}

// Predict applies a fitted line elementwise to new x values. A nil or empty
// input yields an empty output.
func Predict(fit *stats.RegressionFit, xs []float64) []float64 {
	predicted := make([]float64, len(xs))
	for i, x := range xs {
		predicted[i] = fit.PredictAt(x)
	}
	return predicted
}
