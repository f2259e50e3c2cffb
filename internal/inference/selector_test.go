package inference

import (
	"testing"

	"inferkit/domain/stats"
)

func TestSelectDistribution(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		wantKind stats.DistributionKind
		wantDF   int
	}{
		{"Two observations", 2, stats.DistT, 1},
		{"Small sample", 5, stats.DistT, 4},
		{"Textbook example n=25", 25, stats.DistT, 24},
		{"Boundary below", 29, stats.DistT, 28},
		{"Boundary at threshold", 30, stats.DistZ, 0},
		{"Large sample", 100, stats.DistZ, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, df := SelectDistribution(tt.n)
			if kind != tt.wantKind {
				t.Errorf("SelectDistribution(%d) kind = %s, want %s", tt.n, kind, tt.wantKind)
			}
			if df != tt.wantDF {
				t.Errorf("SelectDistribution(%d) df = %d, want %d", tt.n, df, tt.wantDF)
			}
		})
	}
}
