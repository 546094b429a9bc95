package report

type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpGrid
)

// DrawOp is one drawing instruction. Coordinates are in points from the
// top-left corner of the page; Y of a text op is its baseline.
type DrawOp struct {
	Kind OpKind

	// OpText
	X     float64
	Y     float64
	Text  string
	Font  Font
	Align Align

	// OpLine draws from (X, Y) to (X2, Y2).
	X2        float64
	Y2        float64
	LineWidth float64

	// OpGrid draws every vertical line at Xs and every horizontal line at
	// Ys, each spanning the full grid.
	Xs []float64
	Ys []float64
}

// Page is a laid out page of the document.
type Page struct {
	Number  int
	Section string
	Ops     []DrawOp
}

// Texts returns the text of all text operations, in drawing order.
func (p Page) Texts() []string {
	out := []string{}
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func textOp(x float64, y float64, text string, font Font, align Align) DrawOp {
	return DrawOp{Kind: OpText, X: x, Y: y, Text: text, Font: font, Align: align}
}

func lineOp(x1 float64, y1 float64, x2 float64, y2 float64, width float64) DrawOp {
	return DrawOp{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width}
}
