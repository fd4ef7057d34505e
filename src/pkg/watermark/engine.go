// Package watermark stamps ownership marks on every page of a PDF. The
// input document is decoded page by page, each page is placed unmodified
// as a form XObject, and three additive overlays are drawn on top: a tiled
// low-opacity background mark, a larger centered mark, and a footer line.
// The result is re-encoded fully in memory; the caller's bytes are never
// touched.
package watermark

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"
)

const (
	markText   = "WEZA PRODUCTION"
	footerText = "© Weza Production – All Rights Reserved"

	tileFontSize = 38.0
	tileStrideX  = 280.0
	tileStrideY  = 220.0
	tileOpacity  = 0.08

	centerOpacity = 0.15

	footerFontSize = 10.0
	footerOpacity  = 0.7
	footerBaseline = 18.0

	markAngle = 35.0
)

const mediaBox = "/MediaBox"

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Apply decodes src, stamps every page and returns the re-encoded
// document. src is read only; repeated calls over the same bytes are
// independent.
func (e *Engine) Apply(src []byte) (out []byte, retErr error) {
	// The importer never terminates on a zero-length stream, so reject
	// before handing it the reader.
	if len(src) == 0 {
		return nil, fmt.Errorf("failed to decode document: empty input")
	}

	// The page importer reports parse failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("failed to decode document: %v", r)
		}
	}()

	doc := gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: "P", UnitStr: "pt"})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)

	importer := gofpdi.NewImporter()
	reader := io.ReadSeeker(bytes.NewReader(src))

	templates := map[int]int{
		1: importer.ImportPageFromStream(doc, &reader, 1, mediaBox),
	}
	// Page sizes are keyed 1..N, so their count is the page count.
	pageSizes := importer.GetPageSizes()
	pageCount := len(pageSizes)

	for pageNo := 1; pageNo <= pageCount; pageNo++ {
		box, ok := pageSizes[pageNo][mediaBox]
		if !ok {
			return nil, fmt.Errorf("failed to decode document: page %d has no media box", pageNo)
		}
		width, height := box["w"], box["h"]

		orientation := "P"
		if width > height {
			orientation = "L"
		}
		doc.AddPageFormat(orientation, gofpdf.SizeType{Wd: width, Ht: height})

		template, ok := templates[pageNo]
		if !ok {
			template = importer.ImportPageFromStream(doc, &reader, pageNo, mediaBox)
			templates[pageNo] = template
		}
		importer.UseImportedTemplate(doc, template, 0, 0, width, height)

		e.stampPage(doc, width, height)
	}

	var buf bytes.Buffer
	if outputErr := doc.Output(&buf); outputErr != nil {
		return nil, fmt.Errorf("failed to encode document: %w", outputErr)
	}
	return buf.Bytes(), nil
}

// stampPage draws the three overlays on the current page. Geometry is
// specified in PDF user space (origin bottom-left); gofpdf draws top-down,
// so y flips as height-y at each call site.
func (e *Engine) stampPage(doc *gofpdf.Fpdf, width, height float64) {
	translate := doc.UnicodeTranslatorFromDescriptor("")

	// Tiled background mark.
	doc.SetFont("Helvetica", "", tileFontSize)
	doc.SetTextColor(191, 191, 191)
	doc.SetAlpha(tileOpacity, "Normal")
	for _, pos := range TilePositions(width, height, tileStrideX, tileStrideY) {
		e.rotatedText(doc, pos.X, height-pos.Y, markText)
	}

	// Main centered mark, left of center and vertically centered.
	centerSize := CenterFontSize(width, height)
	doc.SetFont("Helvetica", "", centerSize)
	doc.SetTextColor(153, 153, 153)
	doc.SetAlpha(centerOpacity, "Normal")
	e.rotatedText(doc, width/2-centerSize*2.2, height/2, markText)

	// Footer line, no rotation.
	doc.SetFont("Helvetica", "", footerFontSize)
	doc.SetTextColor(102, 102, 102)
	doc.SetAlpha(footerOpacity, "Normal")
	doc.Text(width/2-140, height-footerBaseline, translate(footerText))

	doc.SetAlpha(1.0, "Normal")
}

func (e *Engine) rotatedText(doc *gofpdf.Fpdf, x, y float64, text string) {
	doc.TransformBegin()
	doc.TransformRotate(markAngle, x, y)
	doc.Text(x, y, text)
	doc.TransformEnd()
}
