package stats

import (
	"errors"
	"math"
	"testing"

	"inferkit/domain/core"
)

func TestSampleSummary_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sample  SampleSummary
		wantErr error
	}{
		{"Valid", SampleSummary{Mean: 50, StdDev: 5, N: 30}, nil},
		{"Single observation", SampleSummary{Mean: 50, StdDev: 0, N: 1}, nil},
		{"Zero n", SampleSummary{Mean: 50, StdDev: 5, N: 0}, core.ErrInvalidSampleSize},
		{"Negative n", SampleSummary{Mean: 50, StdDev: 5, N: -3}, core.ErrInvalidSampleSize},
		{"Negative std dev", SampleSummary{Mean: 50, StdDev: -0.1, N: 30}, core.ErrInvalidVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sample.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSampleSummary_StandardError(t *testing.T) {
	sample := SampleSummary{Mean: 100, StdDev: 15, N: 25}
	if se := sample.StandardError(); math.Abs(se-3) > 1e-9 {
		t.Errorf("expected standard error 3, got %f", se)
	}
}

func TestConfidenceInterval(t *testing.T) {
	ci := ConfidenceInterval{Lower: 47, Upper: 53}

	if !ci.Contains(50) || !ci.Contains(47) || !ci.Contains(53) {
		t.Error("interval must contain interior points and both bounds")
	}
	if ci.Contains(46.9) || ci.Contains(53.1) {
		t.Error("interval must not contain exterior points")
	}
	if ci.Width() != 6 {
		t.Errorf("expected width 6, got %f", ci.Width())
	}
}

func TestTailMode_Valid(t *testing.T) {
	for _, tm := range []TailMode{TailTwoSided, TailLeft, TailRight} {
		if !tm.Valid() {
			t.Errorf("%s should be valid", tm)
		}
	}
	if TailMode("both").Valid() {
		t.Error("unknown tail mode should be invalid")
	}
}

func TestRegressionFit_PredictAt(t *testing.T) {
	fit := RegressionFit{Slope: 2, Intercept: 1}
	if got := fit.PredictAt(3); got != 7 {
		t.Errorf("expected 7, got %f", got)
	}
}
