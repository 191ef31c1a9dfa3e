package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobmatch/pkg/faults"
)

func newTestExtractor() *Extractor {
	return New(1<<20, 5*time.Second)
}

func TestExtractPlainText(t *testing.T) {
	e := newTestExtractor()

	got, err := e.Extract(context.Background(), []byte("  Experienced   in Python\n\nand SQL  "), MediaText)
	require.NoError(t, err)
	assert.Equal(t, "Experienced in Python\nand SQL", got)
}

func TestExtractRepairsInvalidUTF8(t *testing.T) {
	e := newTestExtractor()

	got, err := e.Extract(context.Background(), []byte{'o', 'k', 0xff, '!'}, MediaText)
	require.NoError(t, err)
	assert.Equal(t, "ok�!", got)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract(context.Background(), []byte("%!"), "image/png")
	require.Error(t, err)
	assert.Equal(t, faults.UnsupportedFormat, faults.KindOf(err))
}

func TestExtractPayloadTooLarge(t *testing.T) {
	e := New(4, time.Second)

	_, err := e.Extract(context.Background(), []byte("12345"), MediaText)
	require.Error(t, err)
	assert.Equal(t, faults.PayloadTooLarge, faults.KindOf(err))
}

func TestExtractEmptyPayload(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract(context.Background(), nil, MediaText)
	require.Error(t, err)
	assert.Equal(t, faults.Validation, faults.KindOf(err))
}

func TestExtractDocx(t *testing.T) {
	e := newTestExtractor()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>Go developer</w:t></w:r></w:p><w:p><w:r><w:t>Docker</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := e.Extract(context.Background(), buf.Bytes(), MediaDocx)
	require.NoError(t, err)
	assert.Contains(t, got, "Go developer")
	assert.Contains(t, got, "Docker")
}

func TestExtractBrokenDocx(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract(context.Background(), []byte("not a zip"), MediaDocx)
	require.Error(t, err)
	assert.Equal(t, faults.ExtractionFault, faults.KindOf(err))
}

func TestExtractBrokenPDF(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract(context.Background(), []byte("%PDF-1.4 garbage"), MediaPDF)
	require.Error(t, err)
	assert.Equal(t, faults.ExtractionFault, faults.KindOf(err))
}

func TestExtractTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := runBounded(ctx, nil, func([]byte) (string, error) {
		time.Sleep(time.Second)
		return "", nil
	})
	require.Error(t, err)
	assert.Equal(t, faults.ExtractionTimeout, faults.KindOf(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestExtractCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runBounded(ctx, nil, func([]byte) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "", nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, faults.ExtractionFault, faults.KindOf(err))
}

func TestMediaTypeForFilename(t *testing.T) {
	assert.Equal(t, MediaPDF, MediaTypeForFilename("cv.PDF"))
	assert.Equal(t, MediaDocx, MediaTypeForFilename("cv.docx"))
	assert.Equal(t, MediaText, MediaTypeForFilename("cv.txt"))
	assert.Equal(t, "", MediaTypeForFilename("cv.png"))
}
