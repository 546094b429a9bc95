package report

import "fmt"

const (
	STYLE_NORMAL             = "Normal"
	STYLE_TITLE              = "Title"
	STYLE_QUESTION           = "Question"
	STYLE_SUBQUESTION        = "Subquestion"
	STYLE_ANSWER             = "Answer"
	STYLE_INLINE_QUESTION    = "InlineQuestion"
	STYLE_INLINE_SUBQUESTION = "InlineSubquestion"

	// Suffixes for the fragments of a paragraph split on line breaks.
	VARIANT_START = "Start"
	VARIANT_MID   = "Mid"
	VARIANT_END   = "End"
)

const (
	FONT_HELVETICA = "Helvetica"
	FONT_COURIER   = "Courier"

	FONT_STYLE_REGULAR = ""
	FONT_STYLE_BOLD    = "B"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Font struct {
	Family string
	Style  string
	Size   float64
}

// Style describes how a paragraph is set. Lengths are in points.
type Style struct {
	Name        string
	Font        Font
	Leading     float64
	Alignment   Align
	LeftIndent  float64
	SpaceBefore float64
	SpaceAfter  float64

	BulletFont   Font
	BulletIndent float64
}

// StyleSheet maps style names, variants included, to styles.
type StyleSheet map[string]Style

func (s StyleSheet) Get(name string) (Style, error) {
	st, ok := s[name]
	if !ok {
		return Style{}, fmt.Errorf("unknown paragraph style %q", name)
	}
	return st, nil
}

func NewStyleSheet() StyleSheet {
	sheet := StyleSheet{}

	normal := Style{
		Name:       STYLE_NORMAL,
		Font:       Font{Family: FONT_HELVETICA, Style: FONT_STYLE_REGULAR, Size: 10},
		Leading:    12,
		BulletFont: Font{Family: FONT_HELVETICA, Style: FONT_STYLE_REGULAR, Size: 10},
	}
	sheet[STYLE_NORMAL] = normal

	title := normal
	title.Name = STYLE_TITLE
	title.Alignment = AlignCenter
	title.Font = Font{Family: FONT_HELVETICA, Style: FONT_STYLE_BOLD, Size: 18}
	title.Leading = 22
	title.SpaceAfter = 6
	sheet[STYLE_TITLE] = title

	question := normal
	question.Name = STYLE_QUESTION
	question.Font = Font{Family: FONT_HELVETICA, Style: FONT_STYLE_BOLD, Size: 12}
	question.Leading = 12
	question.SpaceBefore = 6
	question.SpaceAfter = 4
	sheet[STYLE_QUESTION] = question

	subquestion := question
	subquestion.Name = STYLE_SUBQUESTION
	subquestion.Font.Size = 10
	subquestion.LeftIndent = 6
	subquestion.SpaceBefore = 4
	subquestion.SpaceAfter = 2
	sheet[STYLE_SUBQUESTION] = subquestion

	// Courier needs less leading than Helvetica.
	answer := normal
	answer.Name = STYLE_ANSWER
	answer.Font.Family = FONT_COURIER
	answer.Leading = 10.5
	answer.LeftIndent = 12
	answer.BulletIndent = 6
	sheet[STYLE_ANSWER] = answer

	// The inline variants put the heading in the bullet and set the
	// answer in the answer font.
	for _, name := range []string{STYLE_QUESTION, STYLE_SUBQUESTION} {
		parent := sheet[name]
		inline := parent
		inline.Name = "Inline" + name
		inline.BulletIndent = parent.LeftIndent
		inline.BulletFont = parent.Font
		inline.LeftIndent = parent.LeftIndent*1.5 + answer.LeftIndent
		inline.Leading = answer.Leading
		inline.Font.Family = answer.Font.Family
		inline.Font.Style = answer.Font.Style
		sheet[inline.Name] = inline
	}

	base := make([]Style, 0, len(sheet))
	for _, st := range sheet {
		base = append(base, st)
	}
	for _, st := range base {
		start := st
		start.Name = st.Name + VARIANT_START
		start.SpaceAfter = 0
		sheet[start.Name] = start

		mid := st
		mid.Name = st.Name + VARIANT_MID
		mid.SpaceBefore = 0
		mid.SpaceAfter = 0
		sheet[mid.Name] = mid

		end := st
		end.Name = st.Name + VARIANT_END
		end.SpaceBefore = 0
		sheet[end.Name] = end
	}
	return sheet
}
