package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

// WritePDF lays out the document and writes it as PDF to w.
func (d *Document) WritePDF(w io.Writer) error {
	pages, err := d.Layout()
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(MARGIN_LEFT, MARGIN_TOP, MARGIN_RIGHT)
	pdf.SetCreationDate(time.Now())
	if d.Title != "" {
		pdf.SetTitle(d.Title, true)
	}
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case OpText:
				pdf.SetFont(op.Font.Family, op.Font.Style, op.Font.Size)
				txt := translate(op.Text)
				x := op.X
				switch op.Align {
				case AlignRight:
					x -= pdf.GetStringWidth(txt)
				case AlignCenter:
					x -= pdf.GetStringWidth(txt) / 2
				}
				pdf.Text(x, op.Y, txt)
			case OpLine:
				pdf.SetLineWidth(op.LineWidth)
				pdf.Line(op.X, op.Y, op.X2, op.Y2)
			case OpGrid:
				if len(op.Xs) == 0 || len(op.Ys) == 0 {
					continue
				}
				pdf.SetLineWidth(op.LineWidth)
				top, bottom := op.Ys[0], op.Ys[len(op.Ys)-1]
				left, right := op.Xs[0], op.Xs[len(op.Xs)-1]
				for _, x := range op.Xs {
					pdf.Line(x, top, x, bottom)
				}
				for _, y := range op.Ys {
					pdf.Line(left, y, right, y)
				}
			}
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("rendering page %d: %w", page.Number, err)
		}
	}

	return pdf.Output(w)
}

// SavePDF writes the document to path. No file is left behind when
// rendering fails.
func (d *Document) SavePDF(path string) error {
	return writeFile(path, d.WritePDF, d.logger)
}

func writeFile(path string, render func(io.Writer) error, logger *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Warn("could not remove incomplete file", slog.String("file", path), slog.String("error", rmErr.Error()))
		}
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
