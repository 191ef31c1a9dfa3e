package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/jobmatch/api/http/presenter"
	"github.com/artem13815/jobmatch/pkg/analysis"
	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/jobs"
)

type AnalyzeHandler struct {
	svc  *analysis.Service
	jobs *jobs.Store
	log  *zap.Logger
}

func NewAnalyzeHandler(svc *analysis.Service, store *jobs.Store, log *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, jobs: store, log: log}
}

type analyzeRequest struct {
	Text           string `json:"text"`
	JobID          string `json:"job_id"`
	JobDescription string `json:"job_description"`
}

// Analyze extracts skills from resume text and, with job context, computes
// the gap and course recommendations.
// @Summary Analyze resume text for skills and gaps
// @Description Extracts canonical skills; with job_id or job_description it also returns missing skills and course recommendations.
// @Tags    analysis
// @Accept  json
// @Produce json
// @Param   input body analyzeRequest true "Resume text with optional job context"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /analyze [post]
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "invalid JSON body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "missing text to analyze")
	}

	jobDescription := req.JobDescription
	if req.JobID != "" {
		// unresolved job context degrades to a skills-only analysis,
		// matching the response the caller gets with no context at all
		if id, err := uuid.Parse(req.JobID); err != nil {
			h.log.Warn("invalid job_id in analyze request", zap.String("job_id", req.JobID))
		} else if job, err := h.jobs.Get(id); err != nil {
			h.log.Warn("unknown job_id in analyze request", zap.String("job_id", req.JobID))
		} else {
			jobDescription = job.Description
		}
	}

	res := h.svc.Analyze(req.Text, jobDescription)
	return presenter.JSON(c, http.StatusOK, res)
}
