package ui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inferkit/app"
	"inferkit/domain/core"
	"inferkit/domain/stats"
	apperrors "inferkit/internal/errors"
	"inferkit/internal/inference"
)

// sampleDTO accepts any of the calculator's three input forms: summary
// statistics, a numeric array, or pasted text.
type sampleDTO struct {
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
	N         int       `json:"n"`
	RawValues []float64 `json:"raw_values"`
	RawText   string    `json:"raw_text"`
}

func (dto sampleDTO) toInput() (app.SampleInput, error) {
	raw := dto.RawValues
	if len(raw) == 0 && dto.RawText != "" {
		parsed, err := inference.ParseRawValues(dto.RawText)
		if err != nil {
			return app.SampleInput{}, err
		}
		raw = parsed
	}
	return app.SampleInput{
		Mean:      dto.Mean,
		StdDev:    dto.StdDev,
		N:         dto.N,
		RawValues: raw,
	}, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleInterval(c *gin.Context) {
	var body struct {
		Sample     sampleDTO `json:"sample"`
		Confidence float64   `json:"confidence"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	sample, err := body.Sample.toInput()
	if err != nil {
		s.renderError(c, err)
		return
	}
	confidence := body.Confidence
	if confidence == 0 {
		confidence = s.defaults.Confidence
	}

	resp, err := s.analysis.ComputeInterval(c.Request.Context(), app.IntervalRequest{
		Sample:     sample,
		Confidence: confidence,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHypothesis(c *gin.Context) {
	var body struct {
		Sample   sampleDTO `json:"sample"`
		NullMean *float64  `json:"null_mean"`
		Alpha    float64   `json:"alpha"`
		Tail     string    `json:"tail"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	sample, err := body.Sample.toInput()
	if err != nil {
		s.renderError(c, err)
		return
	}
	alpha := body.Alpha
	if alpha == 0 {
		alpha = s.defaults.Alpha
	}

	resp, err := s.analysis.RunHypothesisTest(c.Request.Context(), app.HypothesisRequest{
		Sample:   sample,
		NullMean: body.NullMean,
		Alpha:    alpha,
		Tail:     stats.TailMode(body.Tail),
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSampleSize(c *gin.Context) {
	var body app.SampleSizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	if body.Confidence == 0 && body.CriticalValue == 0 {
		body.Confidence = s.defaults.Confidence
	}

	resp, err := s.analysis.PlanSampleSize(c.Request.Context(), body)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRegression(c *gin.Context) {
	var body app.RegressionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	resp, err := s.analysis.FitRegression(c.Request.Context(), body)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePredict(c *gin.Context) {
	var body struct {
		Slope     float64   `json:"slope"`
		Intercept float64   `json:"intercept"`
		X         []float64 `json:"x"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	fit := &stats.RegressionFit{Slope: body.Slope, Intercept: body.Intercept}
	c.JSON(http.StatusOK, gin.H{"predicted": inference.Predict(fit, body.X)})
}

func (s *Server) handleDescribe(c *gin.Context) {
	var body struct {
		RawValues []float64 `json:"raw_values"`
		RawText   string    `json:"raw_text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	values := body.RawValues
	if len(values) == 0 && body.RawText != "" {
		parsed, err := inference.ParseRawValues(body.RawText)
		if err != nil {
			s.renderError(c, err)
			return
		}
		values = parsed
	}

	sample, err := inference.Summarize(values)
	if err != nil {
		s.renderError(c, err)
		return
	}
	median, q25, q75, err := inference.DescribeSample(values)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sample": sample,
		"median": median,
		"q25":    q25,
		"q75":    q75,
	})
}

func (s *Server) handleSweep(c *gin.Context) {
	if s.batch == nil {
		s.renderError(c, apperrors.InvalidInput("no data source configured for sweeps"))
		return
	}

	var body app.SweepRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	if body.Alpha == 0 {
		body.Alpha = s.defaults.Alpha
	}

	resp, err := s.batch.RunSweep(c.Request.Context(), body)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleReport(c *gin.Context) {
	artifactID := core.ID(c.Param("id"))

	artifact, err := s.reader.GetArtifact(c.Request.Context(), artifactID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	md, err := BuildArtifactMarkdown(artifact)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderHTML(md))
}

// renderError maps domain and application errors onto HTTP statuses with the
// taxonomy code in the body.
func (s *Server) renderError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.FromDomain(err)
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.CodeInvalidSampleSize,
		apperrors.CodeInvalidVariance,
		apperrors.CodeMismatchedLengths,
		apperrors.CodeDegenerateInput,
		apperrors.CodeInvalidTarget,
		apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"code": appErr.Code, "error": appErr.Message})
}
