package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/jobmatch/api/http/presenter"
	"github.com/artem13815/jobmatch/pkg/chat"
	"github.com/artem13815/jobmatch/pkg/faults"
)

type ChatHandler struct {
	relay *chat.Relay
	log   *zap.Logger
}

func NewChatHandler(relay *chat.Relay, log *zap.Logger) *ChatHandler {
	return &ChatHandler{relay: relay, log: log}
}

type chatRequest struct {
	Prompt  string         `json:"prompt"`
	History []chat.Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	// legacy key kept for callers that still read "text"
	Text string `json:"text"`
}

// Chat relays a prompt (with optional prior turns) to the configured
// language-model provider.
// @Summary Send a chat prompt to the career assistant
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chatRequest true "Prompt with optional history"
// @Success 200 {object} chatResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "invalid JSON body")
	}

	reply, err := h.relay.Send(c.Context(), req.Prompt, req.History)
	if err != nil {
		kind := faults.KindOf(err)
		switch kind {
		case faults.EmptyPrompt:
			return presenter.Fault(c, err)
		default:
			// classified upstream failure: the caller gets the stable
			// placeholder, the cause stays in the logs
			h.log.Error("chat relay failed",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			return presenter.Error(c, presenter.StatusFor(kind), kind, chat.Placeholder)
		}
	}
	return presenter.JSON(c, http.StatusOK, chatResponse{Reply: reply, Text: reply})
}
