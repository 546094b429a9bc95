package report

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/helpdesk-tools/survey-report/pkg/survey"
)

const (
	NO_RESPONSE          = "(no response)"
	CHOICE_BULLET        = "•"
	UNTITLED_SECTION     = "Untitled"
	PARAGRAPH_LINE_BREAK = "\r\n"
)

// SectionConfig changes how the questions of one section are rendered.
type SectionConfig struct {
	SkipFooter          bool     `json:"skip_footer" yaml:"skip_footer"`
	SkipQuestionNumbers bool     `json:"skip_question_numbers" yaml:"skip_question_numbers"`
	InlineHeadings      []string `json:"inline_headings" yaml:"inline_headings"`
}

func (c SectionConfig) inlines(heading string) bool {
	for _, h := range c.InlineHeadings {
		if h == heading {
			return true
		}
	}
	return false
}

type Options struct {
	Title          string
	HeaderLines    []string
	SectionConfigs map[string]SectionConfig
	ScoringTable   *ScoringTable
	Logger         *slog.Logger
	Measurer       TextMeasurer
}

// block is one paragraph fragment: markup in a named style, with an
// optional plain text bullet.
type block struct {
	style  string
	markup string
	bullet string
}

type section struct {
	title  string
	config SectionConfig
	blocks []block
}

// Document collects the content of a report. Layout turns it into pages.
type Document struct {
	Title        string
	HeaderLines  []string
	ScoringTable ScoringTable

	sectionConfigs map[string]SectionConfig
	styles         StyleSheet
	measurer       TextMeasurer
	logger         *slog.Logger

	sections []*section
}

func NewDocument(opts Options) *Document {
	d := &Document{
		Title:          opts.Title,
		HeaderLines:    opts.HeaderLines,
		ScoringTable:   DefaultScoringTable(),
		sectionConfigs: opts.SectionConfigs,
		styles:         NewStyleSheet(),
		measurer:       opts.Measurer,
		logger:         opts.Logger,
	}
	if opts.ScoringTable != nil {
		d.ScoringTable = *opts.ScoringTable
	}
	if d.sectionConfigs == nil {
		d.sectionConfigs = map[string]SectionConfig{}
	}
	if d.measurer == nil {
		d.measurer = newFpdfMeasurer()
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// AddSection starts a new section on a new page and prints its title.
func (d *Document) AddSection(title string) {
	d.sections = append(d.sections, &section{
		title:  title,
		config: d.sectionConfigs[title],
	})
	d.paragraph(title, STYLE_TITLE)
}

func (d *Document) currentSection() *section {
	if len(d.sections) == 0 {
		d.sections = append(d.sections, &section{
			title:  UNTITLED_SECTION,
			config: d.sectionConfigs[UNTITLED_SECTION],
		})
	}
	return d.sections[len(d.sections)-1]
}

type paragraphOptions struct {
	preformatted bool
	bullet       string
}

type ParagraphOption func(*paragraphOptions)

// Preformatted marks the text as markup that must not be escaped.
func Preformatted() ParagraphOption {
	return func(o *paragraphOptions) { o.preformatted = true }
}

// WithBullet sets the bullet text, printed in the style's bullet font.
func WithBullet(bullet string) ParagraphOption {
	return func(o *paragraphOptions) { o.bullet = bullet }
}

// AddParagraph adds text in the named style to the current section. Text
// spanning several lines becomes one fragment per line; the first keeps
// only the space before it, the last only the space after it.
func (d *Document) AddParagraph(text string, style string, opts ...ParagraphOption) error {
	if _, err := d.styles.Get(style); err != nil {
		return err
	}
	d.paragraph(text, style, opts...)
	return nil
}

func (d *Document) paragraph(text string, style string, opts ...ParagraphOption) {
	o := paragraphOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.preformatted {
		text = html.EscapeString(text)
	}

	fragments := strings.Split(text, PARAGRAPH_LINE_BREAK)
	sec := d.currentSection()
	for i, fragment := range fragments {
		name := style
		if len(fragments) > 1 {
			switch i {
			case 0:
				name += VARIANT_START
			case len(fragments) - 1:
				name += VARIANT_END
			default:
				name += VARIANT_MID
			}
		}
		b := block{style: name, markup: fragment}
		if i == 0 {
			b.bullet = o.bullet
		}
		sec.blocks = append(sec.blocks, b)
	}
}

// AddQuestionResponse renders a question with the respondent's answer.
func (d *Document) AddQuestionResponse(answer *survey.Answer) error {
	if answer == nil || answer.Question == nil {
		return errors.New("answer without question")
	}
	q := answer.Question
	sec := d.currentSection()

	heading := fmt.Sprintf("%d. %s", q.Position, q.Heading)
	if sec.config.SkipQuestionNumbers {
		heading = q.Heading
	}

	if !answer.HasResponse() {
		d.paragraph(heading, STYLE_QUESTION)
		subHeadings := answer.SubHeadings()
		if len(subHeadings) == 0 {
			d.paragraph(NO_RESPONSE, STYLE_ANSWER)
			return nil
		}
		for _, sub := range subHeadings {
			d.paragraph(NO_RESPONSE, STYLE_INLINE_SUBQUESTION, WithBullet(sub))
		}
		return nil
	}

	if d.canInline(sec, q, heading, answer) {
		d.paragraph(answer.Entries[0].Text(), STYLE_INLINE_QUESTION, WithBullet(heading))
		return nil
	}

	d.paragraph(heading, STYLE_QUESTION)
	bullet := ""
	if q.Type.Is(survey.FAMILY_MULTIPLE_CHOICE) {
		bullet = CHOICE_BULLET
	}
	for _, e := range answer.Entries {
		if e.IsPair() {
			value := NO_RESPONSE
			if e.Value != nil {
				value = *e.Value
			}
			d.paragraph(value, STYLE_INLINE_SUBQUESTION, WithBullet(e.Prompt))
			continue
		}
		d.paragraph(e.Text(), STYLE_ANSWER, WithBullet(bullet))
	}
	return nil
}

// canInline reports whether a single text answer may share a line with
// its heading.
func (d *Document) canInline(sec *section, q *survey.Question, heading string, answer *survey.Answer) bool {
	if !q.Type.IsSingleText() || len(answer.Entries) != 1 || answer.Entries[0].IsPair() {
		return false
	}
	if !sec.config.inlines(q.Heading) {
		return false
	}
	st := d.styles[STYLE_INLINE_QUESTION]
	width := d.measurer.StringWidth(heading, st.BulletFont)
	if width > INLINE_WIDTH_LIMIT {
		d.logger.Debug("heading too wide to inline", slog.String("heading", heading), slog.Float64("width", width))
		return false
	}
	return true
}
