package render

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journezy/tripplanner/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleMarkdown = "# Paris Trip\n\n## Day 1\n\nVisit the Louvre and walk the Seine."

func plausiblePDF() []byte {
	return append([]byte("%PDF-1.4"), bytes.Repeat([]byte{'x'}, 2048)...)
}

func TestRenderUsesPrimaryBackend(t *testing.T) {
	r := NewRenderer(testLogger())
	var gotHTML string
	r.htmlPDF = func(html string) ([]byte, error) {
		gotHTML = html
		return plausiblePDF(), nil
	}
	r.textPDF = func(string) ([]byte, error) {
		t.Fatal("second backend must not run when the first succeeds")
		return nil, nil
	}

	doc, tag := r.Render(sampleMarkdown)

	assert.Equal(t, models.DocumentPDF, tag)
	assert.GreaterOrEqual(t, len(doc), minPDFSize)
	assert.Contains(t, gotHTML, "<h1")
	assert.Contains(t, gotHTML, "Visit the Louvre")
}

func TestRenderFallsBackOnPrimaryError(t *testing.T) {
	r := NewRenderer(testLogger())
	r.htmlPDF = func(string) ([]byte, error) { return nil, errors.New("wkhtmltopdf not installed") }
	r.textPDF = func(string) ([]byte, error) { return plausiblePDF(), nil }

	doc, tag := r.Render(sampleMarkdown)

	assert.Equal(t, models.DocumentPDF, tag)
	assert.NotEmpty(t, doc)
}

func TestRenderTreatsUndersizedOutputAsFailure(t *testing.T) {
	r := NewRenderer(testLogger())
	r.htmlPDF = func(string) ([]byte, error) { return []byte("%PDF"), nil } // corrupt stub
	r.textPDF = func(string) ([]byte, error) { return plausiblePDF(), nil }

	_, tag := r.Render(sampleMarkdown)

	assert.Equal(t, models.DocumentPDF, tag)
}

func TestRenderRawMarkdownLastResort(t *testing.T) {
	r := NewRenderer(testLogger())
	r.htmlPDF = func(string) ([]byte, error) { return nil, errors.New("down") }
	r.textPDF = func(string) ([]byte, error) { return nil, errors.New("also down") }

	doc, tag := r.Render(sampleMarkdown)

	assert.Equal(t, models.DocumentMarkdown, tag)
	assert.Equal(t, []byte(sampleMarkdown), doc)
}

func TestToHTMLWrapsTemplate(t *testing.T) {
	html, err := toHTML(sampleMarkdown)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "Day 1")
	assert.Contains(t, html, "</body>")
}

func TestTextPDFProducesDocument(t *testing.T) {
	doc, err := textToPDF(sampleMarkdown)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
	assert.NotEmpty(t, doc)
}
