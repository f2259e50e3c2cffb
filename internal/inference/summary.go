package inference

import (
	"strconv"
	"strings"

	mfstats "github.com/montanaflynn/stats"

	"inferkit/domain/core"
	"inferkit/domain/stats"
)

// Summarize derives a SampleSummary from raw values. The standard deviation is
// the sample (n-1) estimator, matching what the calculator displays for
// user-entered data.
func Summarize(values []float64) (stats.SampleSummary, error) {
	if len(values) < 1 {
		return stats.SampleSummary{}, core.NewSampleSizeError(len(values), 1)
	}

	mean, err := mfstats.Mean(values)
	if err != nil {
		return stats.SampleSummary{}, core.NewDegenerateInputError(err.Error())
	}

	// A single observation has no dispersion estimate; report zero rather
	// than the NaN the sampled estimator would produce.
	stdDev := 0.0
	if len(values) > 1 {
		stdDev, err = mfstats.StandardDeviationSample(values)
		if err != nil {
			return stats.SampleSummary{}, core.NewDegenerateInputError(err.Error())
		}
	}

	raw := make([]float64, len(values))
	copy(raw, values)

	return stats.SampleSummary{
		Mean:      mean,
		StdDev:    stdDev,
		N:         len(values),
		RawValues: raw,
	}, nil
}

// ParseRawValues parses a comma or whitespace separated list of numbers, the
// format the calculator accepts for raw data entry.
func ParseRawValues(input string) ([]float64, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\t' || r == ' '
	})

	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, core.NewDegenerateInputError("non-numeric value " + strconv.Quote(field))
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, core.NewSampleSizeError(0, 1)
	}
	return values, nil
}

// DescribeSample computes the extended descriptive statistics shown next to a
// raw-data sample (median and quartiles are display-only, inference uses the
// summary fields).
func DescribeSample(values []float64) (median, q25, q75 float64, err error) {
	median, err = mfstats.Median(values)
	if err != nil {
		return 0, 0, 0, core.NewDegenerateInputError(err.Error())
	}
	q25, err = mfstats.Percentile(values, 25)
	if err != nil {
		return 0, 0, 0, core.NewDegenerateInputError(err.Error())
	}
	q75, err = mfstats.Percentile(values, 75)
	if err != nil {
		return 0, 0, 0, core.NewDegenerateInputError(err.Error())
	}
	return median, q25, q75, nil
}
