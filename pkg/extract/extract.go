package extract

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/nlp"
)

// Media types accepted by the extractor.
const (
	MediaPDF  = "application/pdf"
	MediaDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaText = "text/plain"
)

// Extractor converts uploaded resume bytes into normalized plain text.
// It is a pure transform: same input, same output, no retries needed.
type Extractor struct {
	maxBytes int64
	timeout  time.Duration
}

func New(maxBytes int64, timeout time.Duration) *Extractor {
	return &Extractor{maxBytes: maxBytes, timeout: timeout}
}

// MediaTypeForFilename resolves the declared media type from a filename
// extension. Unknown extensions return "".
func MediaTypeForFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaPDF
	case ".docx":
		return MediaDocx
	case ".txt":
		return MediaText
	default:
		return ""
	}
}

// Extract converts raw bytes of the declared media type into trimmed,
// whitespace-collapsed, valid UTF-8 text. The call is bounded by the
// configured timeout and by ctx.
func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	if len(data) == 0 {
		return "", faults.New(faults.Validation, "empty file")
	}
	if e.maxBytes > 0 && int64(len(data)) > e.maxBytes {
		return "", faults.New(faults.PayloadTooLarge, "file too large: limit is %d bytes", e.maxBytes)
	}

	var parse func([]byte) (string, error)
	switch normalizeMediaType(mediaType) {
	case MediaPDF:
		parse = fromPDF
	case MediaDocx:
		parse = fromDocx
	case MediaText:
		parse = fromPlainText
	default:
		return "", faults.New(faults.UnsupportedFormat, "unsupported file format %q: only pdf, docx and txt are allowed", mediaType)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := runBounded(ctx, data, parse)
	if err != nil {
		return "", err
	}
	text = strings.ToValidUTF8(text, "�")
	return nlp.CollapseWhitespace(text), nil
}

type parseResult struct {
	text string
	err  error
}

// runBounded executes parse in its own goroutine so a wedged parser cannot
// hang the request past its deadline. Parser panics become ExtractionFault.
func runBounded(ctx context.Context, data []byte, parse func([]byte) (string, error)) (string, error) {
	done := make(chan parseResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- parseResult{err: faults.New(faults.ExtractionFault, "parser panic: %v", r)}
			}
		}()
		text, err := parse(data)
		if err != nil {
			done <- parseResult{err: faults.Wrap(faults.ExtractionFault, err, "failed to extract text")}
			return
		}
		done <- parseResult{text: text}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return "", faults.Wrap(faults.ExtractionTimeout, ctx.Err(), "text extraction timed out")
		}
		return "", faults.Wrap(faults.ExtractionFault, ctx.Err(), "text extraction canceled")
	}
}

func normalizeMediaType(mt string) string {
	mt = strings.ToLower(strings.TrimSpace(mt))
	// strip parameters like "; charset=utf-8"
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

func fromPlainText(data []byte) (string, error) {
	return string(data), nil
}
