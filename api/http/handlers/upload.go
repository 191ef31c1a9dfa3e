package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/jobmatch/api/http/presenter"
	"github.com/artem13815/jobmatch/pkg/extract"
	"github.com/artem13815/jobmatch/pkg/faults"
)

type UploadHandler struct {
	extractor *extract.Extractor
	log       *zap.Logger
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewUploadHandler(extractor *extract.Extractor, log *zap.Logger, maxBytes int64) *UploadHandler {
	return &UploadHandler{extractor: extractor, log: log, maxBytes: maxBytes}
}

// Upload accepts a resume file and returns its extracted plain text.
// @Summary Extract text from an uploaded resume
// @Description Accepts a PDF, DOCX or TXT file and returns normalized plain text.
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Resume file (PDF, DOCX or TXT)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "file is required (pdf, docx or txt)")
	}

	mediaType := extract.MediaTypeForFilename(fh.Filename)
	if mediaType == "" {
		mediaType = fh.Header.Get("Content-Type")
	}

	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, faults.Validation, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Fault(c, err)
	}

	text, err := h.extractor.Extract(c.Context(), data, mediaType)
	if err != nil {
		h.log.Warn("text extraction failed",
			zap.String("filename", fh.Filename),
			zap.String("kind", string(faults.KindOf(err))),
			zap.Error(err),
		)
		return presenter.Fault(c, err)
	}

	h.log.Debug("resume extracted",
		zap.String("filename", fh.Filename),
		zap.Int("sizeB", len(data)),
		zap.Int("chars", len(text)),
	)
	return presenter.JSON(c, http.StatusOK, fiber.Map{"text": text})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, faults.Wrap(faults.Internal, err, "failed to read file")
	}
	if int64(len(b)) > max {
		return nil, faults.New(faults.PayloadTooLarge, "file too large: limit is %d bytes", max)
	}
	return b, nil
}
