package inference

import (
	"errors"
	"math"
	"testing"

	"inferkit/domain/core"
)

func TestFitRegression_PerfectlyCollinear(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}

	fit, err := FitRegression(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(fit.Slope-2) > 1e-9 {
		t.Errorf("expected slope 2, got %f", fit.Slope)
	}
	if math.Abs(fit.Intercept) > 1e-9 {
		t.Errorf("expected intercept 0, got %f", fit.Intercept)
	}
	if math.Abs(fit.R-1.0) > 1e-9 {
		t.Errorf("expected r=1.0, got %f", fit.R)
	}
	if math.Abs(fit.RSquared-1.0) > 1e-9 {
		t.Errorf("expected R^2=1.0, got %f", fit.RSquared)
	}
	if math.Abs(fit.StandardError) > 1e-9 {
		t.Errorf("expected zero slope error on an exact fit, got %f", fit.StandardError)
	}
	for i, r := range fit.Residuals {
		if math.Abs(r) > 1e-9 {
			t.Errorf("residual[%d] = %f, expected 0", i, r)
		}
	}
}

func TestFitRegression_NoisyFit(t *testing.T) {
	// y = 3x + 1 with small perturbations; the fit should land near the
	// generating line with r close to but below 1.
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{4.1, 6.9, 10.2, 12.8, 16.1, 18.9}

	fit, err := FitRegression(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(fit.Slope-3) > 0.05 {
		t.Errorf("expected slope near 3, got %f", fit.Slope)
	}
	if math.Abs(fit.Intercept-1) > 0.25 {
		t.Errorf("expected intercept near 1, got %f", fit.Intercept)
	}
	if fit.R <= 0.99 || fit.R > 1 {
		t.Errorf("expected r in (0.99, 1], got %f", fit.R)
	}
	if fit.StandardError <= 0 {
		t.Errorf("expected positive slope error on a noisy fit, got %f", fit.StandardError)
	}

	// Residuals must sum to zero for an OLS fit with intercept.
	sum := 0.0
	for _, r := range fit.Residuals {
		sum += r
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("residuals sum to %f, expected 0", sum)
	}
}

func TestFitRegression_PredictionReproducesFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.2, 3.9, 6.1, 8.0, 9.8}

	fit, err := FitRegression(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	predicted := Predict(fit, x)
	if len(predicted) != len(y) {
		t.Fatalf("expected %d predictions, got %d", len(y), len(predicted))
	}
	for i := range y {
		// Prediction on the training x must reproduce y within its residual.
		if math.Abs(y[i]-predicted[i]-fit.Residuals[i]) > 1e-9 {
			t.Errorf("y[%d] - prediction = %f, residual = %f", i, y[i]-predicted[i], fit.Residuals[i])
		}
	}
}

func TestFitRegression_ConstantY(t *testing.T) {
	fit, err := FitRegression([]float64{1, 2, 3, 4}, []float64{5, 5, 5, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fit.Slope != 0 {
		t.Errorf("expected slope 0 for constant y, got %f", fit.Slope)
	}
	if fit.R != 0 {
		t.Errorf("expected r=0 when correlation is undefined, got %f", fit.R)
	}
}

func TestFitRegression_InvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		x       []float64
		y       []float64
		wantErr error
	}{
		{"Mismatched lengths", []float64{1, 2, 3}, []float64{1, 2}, core.ErrMismatchedLengths},
		{"Too few points", []float64{1}, []float64{2}, core.ErrInvalidSampleSize},
		{"Empty", nil, nil, core.ErrInvalidSampleSize},
		{"Zero-variance x", []float64{4, 4, 4, 4}, []float64{1, 2, 3, 4}, core.ErrDegenerateInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitRegression(tt.x, tt.y)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPredict_EmptyInput(t *testing.T) {
	fit, err := FitRegression([]float64{1, 2, 3}, []float64{2, 4, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Predict(fit, nil); len(got) != 0 {
		t.Errorf("expected empty predictions for nil input, got %v", got)
	}
	if got := fit.PredictAt(4.5); math.Abs(got-9) > 1e-9 {
		t.Errorf("expected 9 at x=4.5, got %f", got)
	}
}
