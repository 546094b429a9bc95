package report

import (
	"github.com/go-pdf/fpdf"
)

// TextMeasurer returns the advance width of text in points.
type TextMeasurer interface {
	StringWidth(text string, font Font) float64
}

// fpdfMeasurer uses the metrics of the PDF core fonts. Text is converted
// to the core fonts' code page first, so widths match what is written.
type fpdfMeasurer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

func newFpdfMeasurer() *fpdfMeasurer {
	pdf := fpdf.New("P", "pt", "Letter", "")
	return &fpdfMeasurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (m *fpdfMeasurer) StringWidth(text string, font Font) float64 {
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	return m.pdf.GetStringWidth(m.translate(text))
}
