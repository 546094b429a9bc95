package report

const POINTS_PER_INCH = 72.0

// US Letter, in points.
const (
	PAGE_WIDTH  = 8.5 * POINTS_PER_INCH
	PAGE_HEIGHT = 11 * POINTS_PER_INCH

	MARGIN_LEFT   = 0.5 * POINTS_PER_INCH
	MARGIN_RIGHT  = 0.5 * POINTS_PER_INCH
	MARGIN_TOP    = 0.5 * POINTS_PER_INCH
	MARGIN_BOTTOM = 0.75 * POINTS_PER_INCH

	// Room kept free below the top margin for the header block.
	HEADER_SPACE = 1.5 * POINTS_PER_INCH

	FRAME_TOP    = MARGIN_TOP + HEADER_SPACE
	FRAME_BOTTOM = PAGE_HEIGHT - MARGIN_BOTTOM
	FRAME_LEFT   = MARGIN_LEFT
	FRAME_WIDTH  = PAGE_WIDTH - MARGIN_LEFT - MARGIN_RIGHT
)

const (
	HEADER_FONT_SIZE    = 14
	HEADER_RIGHT_X      = PAGE_WIDTH - 0.5*POINTS_PER_INCH
	HEADER_FIRST_Y      = 0.45 * POINTS_PER_INCH
	HEADER_LINE_SPACING = 0.25 * POINTS_PER_INCH

	TABLE_X           = 0.5 * POINTS_PER_INCH
	TABLE_Y           = 0.5 * POINTS_PER_INCH
	TABLE_COL_WIDTH   = 0.5 * POINTS_PER_INCH
	TABLE_ROW_HEIGHT  = 0.25 * POINTS_PER_INCH
	TABLE_FONT_SIZE   = 8
	TABLE_LINE_WIDTH  = 0.1
	TABLE_TEXT_OFFSET = 7.0

	FOOTER_FONT_SIZE  = 10
	FOOTER_Y          = PAGE_HEIGHT - 0.5*POINTS_PER_INCH
	FOOTER_LABEL_X    = PAGE_WIDTH - 0.75*POINTS_PER_INCH
	FOOTER_RULE_END_X = PAGE_WIDTH - 0.5*POINTS_PER_INCH
	FOOTER_PAGE_X     = 0.5 * POINTS_PER_INCH
	FOOTER_RULE_WIDTH = 1.0

	// Inline headings may not be wider than this.
	INLINE_WIDTH_LIMIT = MARGIN_LEFT + PAGE_WIDTH*0.5
	BASELINE_RATIO     = 0.8
)

// ScoringTable is the grid printed in the header of every page. The
// first row holds the column titles, the following rows their labels.
type ScoringTable struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []string `json:"rows" yaml:"rows"`
}

func DefaultScoringTable() ScoringTable {
	return ScoringTable{
		Columns: []string{"Reader #", "Initials", "General", "Mac", "Win", "Net", "Athena", "TOTAL"},
		Rows:    []string{"1", "2"},
	}
}
