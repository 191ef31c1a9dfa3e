package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobmatch/pkg/faults"
)

// ErrorResponse is the error envelope every endpoint returns:
// {"error": {"kind": "...", "message": "..."}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, kind faults.Kind, message string) error {
	return JSON(c, status, ErrorResponse{Error: ErrorBody{Kind: string(kind), Message: message}})
}

// Fault renders a classified error with the status its kind implies.
func Fault(c *fiber.Ctx, err error) error {
	kind := faults.KindOf(err)
	return Error(c, StatusFor(kind), kind, faults.MessageOf(err))
}

// StatusFor maps a fault kind to its HTTP status class: 4xx for
// client-caused, 502 for upstream, 5xx for internal.
func StatusFor(kind faults.Kind) int {
	switch kind {
	case faults.Validation, faults.UnsupportedFormat, faults.PayloadTooLarge, faults.EmptyPrompt:
		return http.StatusBadRequest
	case faults.TransportError, faults.ProviderError, faults.ProtocolError:
		return http.StatusBadGateway
	case faults.ExtractionTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
