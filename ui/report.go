package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"inferkit/app"
	"inferkit/domain/core"
	"inferkit/domain/stats"
)

// BuildArtifactMarkdown renders a recorded analysis as a markdown report.
// Hypothesis tests and intervals get the calculator's narrative sentences;
// other kinds fall back to a generic payload dump.
func BuildArtifactMarkdown(artifact *core.Artifact) (string, error) {
	// Payloads come back as typed structs from the in-memory ledger and as
	// maps from Postgres; a JSON round-trip normalizes both.
	raw, err := json.Marshal(artifact.Payload)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis %s\n\n", artifact.ID)
	fmt.Fprintf(&b, "- **Kind:** %s\n", artifact.Kind)
	fmt.Fprintf(&b, "- **Recorded:** %s\n\n", artifact.CreatedAt)

	switch artifact.Kind {
	case core.ArtifactHypothesisTest:
		var resp app.HypothesisResponse
		if err := json.Unmarshal(raw, &resp); err == nil && resp.Result != nil {
			writeHypothesisNarrative(&b, resp.Sample, resp.Result)
			return b.String(), nil
		}
	case core.ArtifactInterval:
		var resp app.IntervalResponse
		if err := json.Unmarshal(raw, &resp); err == nil && resp.Estimate != nil {
			writeIntervalNarrative(&b, resp.Sample, resp.Estimate)
			return b.String(), nil
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(raw)
	}
	fmt.Fprintf(&b, "```json\n%s\n```\n", pretty.String())
	return b.String(), nil
}

func writeIntervalNarrative(b *strings.Builder, sample stats.SampleSummary, est *stats.IntervalEstimate) {
	fmt.Fprintf(b, "**Methodology:** Using a **%s** based on sample size n=%d.\n\n",
		methodologyName(est.Distribution, est.DegreesFreedom), sample.N)
	fmt.Fprintf(b, "| Sample Mean | Margin of Error | Critical Value |\n|---|---|---|\n| %.2f | ±%.2f | %.3f |\n\n",
		est.Mean, est.MarginOfError, est.CriticalValue)
	fmt.Fprintf(b, "We are **%.0f%% confident** the true mean is between **%.2f** and **%.2f**.\n",
		est.Confidence*100, est.Interval.Lower, est.Interval.Upper)
}

func writeHypothesisNarrative(b *strings.Builder, sample stats.SampleSummary, result *stats.HypothesisTestResult) {
	fmt.Fprintf(b, "**Methodology:** Using a **%s** based on sample size n=%d.\n\n",
		methodologyName(result.Distribution, result.DegreesFreedom), sample.N)
	fmt.Fprintf(b, "Testing H₀: μ = %.2f against the sample mean %.2f (α = %.2f, %s).\n\n",
		result.NullMean, sample.Mean, result.Alpha, tailName(result.Tail))
	fmt.Fprintf(b, "| Test Statistic | P-Value | %.0f%% CI |\n|---|---|---|\n| %.3f | %.4f | [%.2f, %.2f] |\n\n",
		(1-result.Alpha)*100, result.TestStatistic, result.PValue, result.Interval.Lower, result.Interval.Upper)

	if result.RejectNull {
		fmt.Fprintf(b, "**Significant result.** P-value = %.4f. Reject H₀.\n", result.PValue)
	} else {
		fmt.Fprintf(b, "**Not significant.** P-value = %.4f. Fail to reject H₀.\n", result.PValue)
	}
}

func methodologyName(kind stats.DistributionKind, df int) string {
	if kind == stats.DistT {
		return fmt.Sprintf("T-Test (Student's T, df=%d)", df)
	}
	return "Z-Test (Normal)"
}

func tailName(tail stats.TailMode) string {
	switch tail {
	case stats.TailLeft:
		return "left-tailed"
	case stats.TailRight:
		return "right-tailed"
	default:
		return "two-sided"
	}
}

// RenderHTML converts a markdown report to a standalone HTML fragment
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
