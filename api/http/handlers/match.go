package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/jobmatch/api/http/presenter"
	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/jobs"
	"github.com/artem13815/jobmatch/pkg/match"
)

type MatchHandler struct {
	store *jobs.Store
	log   *zap.Logger
}

func NewMatchHandler(store *jobs.Store, log *zap.Logger) *MatchHandler {
	return &MatchHandler{store: store, log: log}
}

type matchRequest struct {
	Text string `json:"text"`
}

// Match ranks the resume text against every stored job profile.
// @Summary Rank stored jobs by similarity to a resume
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body matchRequest true "Resume text"
// @Success 200 {object} map[string][]match.Ranking
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /match [post]
func (h *MatchHandler) Match(c *fiber.Ctx) error {
	var req matchRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "invalid JSON body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "missing resume text")
	}

	all := h.store.List()
	if len(all) == 0 {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "no jobs available for matching")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{"results": match.Rank(req.Text, all)})
}
