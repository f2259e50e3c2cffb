package inference

import (
	"errors"
	"math"
	"testing"

	"inferkit/domain/core"
)

func TestSummarize(t *testing.T) {
	// Deviations from 50: -2, 2, -5, 5, 0, -1, 1 -> sum of squares 60,
	// sample variance 60/6 = 10.
	values := []float64{48, 52, 45, 55, 50, 49, 51}

	summary, err := Summarize(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(summary.Mean-50) > 1e-9 {
		t.Errorf("expected mean 50, got %f", summary.Mean)
	}
	if math.Abs(summary.StdDev-math.Sqrt(10)) > 1e-9 {
		t.Errorf("expected sample std dev sqrt(10), got %f", summary.StdDev)
	}
	if summary.N != 7 {
		t.Errorf("expected n=7, got %d", summary.N)
	}
	if err := summary.Validate(); err != nil {
		t.Errorf("derived summary must satisfy its invariants: %v", err)
	}
}

func TestSummarize_SingleValue(t *testing.T) {
	summary, err := Summarize([]float64{42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.StdDev != 0 {
		t.Errorf("expected zero std dev for a single observation, got %f", summary.StdDev)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, core.ErrInvalidSampleSize) {
		t.Errorf("expected ErrInvalidSampleSize, got %v", err)
	}
}

func TestParseRawValues(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr error
	}{
		{"Comma separated", "48, 52, 45, 55, 50, 49, 51", []float64{48, 52, 45, 55, 50, 49, 51}, nil},
		{"Newlines and tabs", "1\n2\t3", []float64{1, 2, 3}, nil},
		{"Trailing comma", "1, 2, 3,", []float64{1, 2, 3}, nil},
		{"Negative and decimal", "-1.5, 2.25", []float64{-1.5, 2.25}, nil},
		{"Non-numeric", "1, two, 3", nil, core.ErrDegenerateInput},
		{"Empty", "  ", nil, core.ErrInvalidSampleSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRawValues(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d values, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("value[%d] = %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDescribeSample(t *testing.T) {
	median, q25, q75, err := DescribeSample([]float64{45, 48, 49, 50, 51, 52, 55})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if median != 50 {
		t.Errorf("expected median 50, got %f", median)
	}
	if q25 >= median || q75 <= median {
		t.Errorf("quartiles %f / %f should bracket the median", q25, q75)
	}
}
