package report

import (
	"fmt"
	"log/slog"
	"math"
)

// segment is a run of text set in one font on one line.
type segment struct {
	text string
	font Font
}

type line struct {
	segments []segment
	width    float64
}

// Layout breaks the sections into pages and returns the drawing
// operations of every page. Each section starts on a new page.
func (d *Document) Layout() ([]Page, error) {
	l := &layouter{doc: d}
	sections := d.sections
	if len(sections) == 0 {
		sections = []*section{{title: ""}}
	}
	for _, sec := range sections {
		if err := l.layoutSection(sec); err != nil {
			return nil, err
		}
	}
	return l.pages, nil
}

type layouter struct {
	doc   *Document
	pages []Page

	// pages of the section being laid out
	sectionStart int
	y            float64
	atTop        bool
}

func (l *layouter) newPage(sec *section) {
	l.pages = append(l.pages, Page{Number: len(l.pages) + 1, Section: sec.title})
	p := &l.pages[len(l.pages)-1]
	p.Ops = append(p.Ops, l.headerOps()...)
	l.y = FRAME_TOP
	l.atTop = true
}

func (l *layouter) current() *Page {
	return &l.pages[len(l.pages)-1]
}

func (l *layouter) layoutSection(sec *section) error {
	l.sectionStart = len(l.pages)
	l.newPage(sec)

	for _, b := range sec.blocks {
		if err := l.layoutBlock(sec, b); err != nil {
			return err
		}
	}

	for i := l.sectionStart; i < len(l.pages); i++ {
		last := i == len(l.pages)-1
		l.pages[i].Ops = append(l.pages[i].Ops, l.footerOps(sec, l.pages[i].Number, last)...)
	}
	l.doc.logger.Debug("section laid out",
		slog.String("section", sec.title),
		slog.Int("firstPage", l.sectionStart+1),
		slog.Int("pages", len(l.pages)-l.sectionStart),
	)
	return nil
}

func (l *layouter) layoutBlock(sec *section, b block) error {
	st, err := l.doc.styles.Get(b.style)
	if err != nil {
		return err
	}

	if !l.atTop {
		l.y += st.SpaceBefore
	}

	bulletWidth := 0.0
	firstX := FRAME_LEFT + st.LeftIndent
	if b.bullet != "" {
		bulletWidth = l.doc.measurer.StringWidth(b.bullet, st.BulletFont)
		gap := l.doc.measurer.StringWidth(" ", st.BulletFont)
		firstX = math.Max(firstX, FRAME_LEFT+st.BulletIndent+bulletWidth+gap)
	}
	restX := FRAME_LEFT + st.LeftIndent
	right := FRAME_LEFT + FRAME_WIDTH

	lines := l.wrap(parseMarkup(b.markup), st.Font, right-firstX, right-restX)
	if len(lines) == 0 {
		// an empty paragraph still takes one line, so a bullet has a place
		lines = []line{{}}
	}

	for i, ln := range lines {
		if l.y+st.Leading > FRAME_BOTTOM && !l.atTop {
			l.newPage(sec)
		}
		baseline := l.y + st.Font.Size*BASELINE_RATIO

		x := restX
		if i == 0 {
			x = firstX
			if b.bullet != "" {
				l.current().Ops = append(l.current().Ops,
					textOp(FRAME_LEFT+st.BulletIndent, baseline, b.bullet, st.BulletFont, AlignLeft))
			}
		}
		switch st.Alignment {
		case AlignCenter:
			x = x + (right-x-ln.width)/2
		case AlignRight:
			x = right - ln.width
		}
		for _, seg := range ln.segments {
			l.current().Ops = append(l.current().Ops, textOp(x, baseline, seg.text, seg.font, AlignLeft))
			x += l.doc.measurer.StringWidth(seg.text, seg.font)
		}

		l.y += st.Leading
		l.atTop = false
	}

	l.y += st.SpaceAfter
	return nil
}

// wrap fills lines greedily. The first line may have a different width
// than the following ones. A word wider than a line gets a line of its own.
func (l *layouter) wrap(words []word, base Font, firstWidth float64, restWidth float64) []line {
	lines := []line{}
	cur := line{}
	limit := firstWidth

	flush := func() {
		lines = append(lines, cur)
		cur = line{}
		limit = restWidth
	}

	for _, w := range words {
		if w.brk {
			flush()
			continue
		}
		font := fontFor(base, w.bold, w.italic)
		ww := l.doc.measurer.StringWidth(w.text, font)
		space := ""
		sw := 0.0
		if w.spaceBefore && len(cur.segments) > 0 {
			space = " "
			sw = l.doc.measurer.StringWidth(space, font)
		}
		if len(cur.segments) > 0 && cur.width+sw+ww > limit {
			flush()
			space, sw = "", 0
		}

		text := space + w.text
		if n := len(cur.segments); n > 0 && cur.segments[n-1].font == font {
			cur.segments[n-1].text += text
		} else {
			cur.segments = append(cur.segments, segment{text: text, font: font})
		}
		cur.width += sw + ww
	}
	if len(cur.segments) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func (l *layouter) headerOps() []DrawOp {
	ops := []DrawOp{}
	headerFont := Font{Family: FONT_HELVETICA, Style: FONT_STYLE_BOLD, Size: HEADER_FONT_SIZE}
	for i, txt := range l.doc.HeaderLines {
		row := float64(i + 1)
		ops = append(ops, textOp(HEADER_RIGHT_X, HEADER_FIRST_Y+row*HEADER_LINE_SPACING, txt, headerFont, AlignRight))
	}
	return append(ops, scoringTableOps(l.doc.ScoringTable)...)
}

func scoringTableOps(table ScoringTable) []DrawOp {
	data := [][]string{table.Columns}
	for _, r := range table.Rows {
		data = append(data, []string{r})
	}
	nCols := 0
	for _, row := range data {
		if len(row) > nCols {
			nCols = len(row)
		}
	}
	if nCols == 0 {
		return nil
	}

	xs := make([]float64, nCols+1)
	for i := range xs {
		xs[i] = TABLE_X + TABLE_COL_WIDTH*float64(i)
	}
	ys := make([]float64, len(data)+1)
	for i := range ys {
		ys[i] = TABLE_Y + TABLE_ROW_HEIGHT*float64(i)
	}

	ops := []DrawOp{{Kind: OpGrid, Xs: xs, Ys: ys, LineWidth: TABLE_LINE_WIDTH}}
	font := Font{Family: FONT_HELVETICA, Style: FONT_STYLE_REGULAR, Size: TABLE_FONT_SIZE}
	for r, row := range data {
		for c, txt := range row {
			ops = append(ops, textOp(xs[c]+TABLE_COL_WIDTH*0.5, ys[r+1]-TABLE_TEXT_OFFSET, txt, font, AlignCenter))
		}
	}
	return ops
}

// footerOps prints the page number and, unless the section skips it, the
// scoring line on the section's last page or a continuation notice on
// the others.
func (l *layouter) footerOps(sec *section, number int, last bool) []DrawOp {
	font := Font{Family: FONT_HELVETICA, Style: FONT_STYLE_REGULAR, Size: FOOTER_FONT_SIZE}
	ops := []DrawOp{
		textOp(FOOTER_PAGE_X, FOOTER_Y, fmt.Sprintf("Page %d", number), font, AlignLeft),
	}
	if sec.config.SkipFooter || sec.title == "" {
		return ops
	}
	if !last {
		return append(ops, textOp(FOOTER_RULE_END_X, FOOTER_Y, fmt.Sprintf(`"%s" continues on next page`, sec.title), font, AlignRight))
	}
	return append(ops,
		textOp(FOOTER_LABEL_X, FOOTER_Y, fmt.Sprintf(`"%s" score: `, sec.title), font, AlignRight),
		lineOp(FOOTER_LABEL_X, FOOTER_Y, FOOTER_RULE_END_X, FOOTER_Y, FOOTER_RULE_WIDTH),
	)
}
