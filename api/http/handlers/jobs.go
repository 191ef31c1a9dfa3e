package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/jobmatch/api/http/presenter"
	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/jobs"
)

type JobsHandler struct {
	store *jobs.Store
	log   *zap.Logger
}

func NewJobsHandler(store *jobs.Store, log *zap.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

type createJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create stores a job description for later gap analysis and matching.
// @Summary Add a job profile
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "Job title and description"
// @Success 201 {object} jobs.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "invalid JSON body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "missing description")
	}

	job, err := h.store.Add(strings.TrimSpace(req.Title), req.Description)
	if err != nil {
		h.log.Error("failed to store job", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, faults.Internal, "failed to store job")
	}
	return presenter.JSON(c, http.StatusCreated, job)
}

// List returns all stored job profiles.
// @Summary List job profiles
// @Tags    jobs
// @Produce json
// @Success 200 {array} jobs.Job
// @Router  /jobs [get]
func (h *JobsHandler) List(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, h.store.List())
}
