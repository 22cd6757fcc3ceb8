package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/phpdave11/gofpdf"

	"github.com/journezy/tripplanner/internal/models"
)

// Outputs smaller than this are treated as corrupt and trigger the next
// backend in the cascade.
const minPDFSize = 1024

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; color: #1f2430; margin: 36px; line-height: 1.5; }
h1 { color: #16425b; border-bottom: 2px solid #16425b; padding-bottom: 6px; }
h2 { color: #2f6690; margin-top: 28px; }
h3 { color: #3a7ca5; }
ul, ol { padding-left: 22px; }
img { max-width: 480px; border-radius: 6px; margin: 8px 0; }
code { background: #f2f4f7; padding: 1px 4px; border-radius: 3px; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>`

var page = template.Must(template.New("itinerary").Parse(pageTemplate))

// Renderer turns itinerary markdown into a deliverable document,
// cascading from an HTML-based PDF backend to a plain-text PDF backend
// to the raw markdown bytes. The backends are fields so tests can
// substitute failing ones.
type Renderer struct {
	logger  *slog.Logger
	htmlPDF func(html string) ([]byte, error)
	textPDF func(markdownText string) ([]byte, error)
}

func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{
		logger:  logger,
		htmlPDF: htmlToPDF,
		textPDF: textToPDF,
	}
}

// Render never fails: the worst case is the markdown bytes themselves
// with a "markdown" type tag.
func (r *Renderer) Render(markdownText string) ([]byte, string) {
	if html, err := toHTML(markdownText); err == nil {
		if pdf, err := r.htmlPDF(html); err == nil && len(pdf) >= minPDFSize {
			return pdf, models.DocumentPDF
		} else if err != nil {
			r.logger.Warn("html pdf backend failed", "error", err)
		} else {
			r.logger.Warn("html pdf backend produced undersized output", "bytes", len(pdf))
		}
	} else {
		r.logger.Warn("markdown to html conversion failed", "error", err)
	}

	if pdf, err := r.textPDF(markdownText); err == nil && len(pdf) >= minPDFSize {
		return pdf, models.DocumentPDF
	} else if err != nil {
		r.logger.Warn("text pdf backend failed", "error", err)
	} else {
		r.logger.Warn("text pdf backend produced undersized output", "bytes", len(pdf))
	}

	r.logger.Warn("all pdf backends failed, returning raw markdown")
	return []byte(markdownText), models.DocumentMarkdown
}

func toHTML(markdownText string) (string, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(markdownText))
	body := markdown.Render(doc, mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags}))

	var buf bytes.Buffer
	if err := page.Execute(&buf, struct{ Body template.HTML }{Body: template.HTML(body)}); err != nil {
		return "", fmt.Errorf("executing page template: %w", err)
	}
	return buf.String(), nil
}

func htmlToPDF(html string) ([]byte, error) {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("creating pdf generator: %w", err)
	}
	gen.AddPage(wkhtmltopdf.NewPageReader(strings.NewReader(html)))
	if err := gen.Create(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return gen.Bytes(), nil
}

// textToPDF is the second-tier backend: a plain typographic rendering of
// the markdown source, headings bolded, everything else as body text.
func textToPDF(markdownText string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdownText, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			pdf.SetFont("Helvetica", "B", 16)
			pdf.MultiCell(0, 8, tr(strings.TrimPrefix(line, "# ")), "", "L", false)
		case strings.HasPrefix(line, "## "):
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, tr(strings.TrimPrefix(line, "## ")), "", "L", false)
		case strings.HasPrefix(line, "### "):
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(strings.TrimPrefix(line, "### ")), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
