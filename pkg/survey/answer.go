package survey

import "strings"

type EntryKind int

const (
	// EntryText is a plain answer line.
	EntryText EntryKind = iota
	// EntrySubAnswer pairs a sub-question prompt with its answer, if any.
	EntrySubAnswer
	// EntryOther pairs the label of an "other" option with the respondent's text.
	EntryOther
	// EntryMatrixCell pairs a matrix row with the chosen column.
	EntryMatrixCell
)

// Entry is one normalized answer item. Prompt is empty for EntryText.
type Entry struct {
	Kind   EntryKind
	Prompt string
	Value  *string
}

func TextEntry(text string) Entry {
	return Entry{Kind: EntryText, Value: &text}
}

func SubAnswerEntry(prompt string, value *string) Entry {
	return Entry{Kind: EntrySubAnswer, Prompt: prompt, Value: value}
}

func OtherEntry(label string, text string) Entry {
	return Entry{Kind: EntryOther, Prompt: label, Value: &text}
}

func MatrixCellEntry(row string, column string) Entry {
	return Entry{Kind: EntryMatrixCell, Prompt: row, Value: &column}
}

// IsPair is true for every entry rendered as "prompt: value".
func (e Entry) IsPair() bool {
	return e.Kind != EntryText
}

// Text returns the value, or "" when there is none.
func (e Entry) Text() string {
	if e.Value == nil {
		return ""
	}
	return *e.Value
}

// hasContent is true for any chosen option or matrix cell, even when the
// "other" text was left blank.
func (e Entry) hasContent() bool {
	switch e.Kind {
	case EntryOther, EntryMatrixCell:
		return true
	}
	return e.Value != nil && *e.Value != ""
}

// Answer is the normalized view of one respondent's answer to one question.
type Answer struct {
	Question *Question
	Entries  []Entry
}

// HasResponse is true iff at least one entry carries content.
func (a *Answer) HasResponse() bool {
	if a == nil {
		return false
	}
	for _, e := range a.Entries {
		if e.hasContent() {
			return true
		}
	}
	return false
}

// Flat returns the plain text answers.
func (a *Answer) Flat() []string {
	out := []string{}
	if a == nil {
		return out
	}
	for _, e := range a.Entries {
		if e.Kind == EntryText {
			out = append(out, e.Text())
		}
	}
	return out
}

// Text joins the plain text answers, e.g. for a header line.
func (a *Answer) Text() string {
	return strings.Join(a.Flat(), ", ")
}

// SubHeadings lists the prompts of a multi-part question in position
// order; nil for every other question type.
func (a *Answer) SubHeadings() []string {
	if a == nil || a.Question == nil || !a.Question.Type.IsMultiPart() {
		return nil
	}
	out := []string{}
	for _, o := range a.Question.positionedOptions() {
		out = append(out, o.Text)
	}
	return out
}
