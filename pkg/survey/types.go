package survey

import "strings"

// Family is the top level of a question's two-level type tag.
type Family string

const (
	FAMILY_PRESENTATION    Family = "presentation"
	FAMILY_OPEN_ENDED      Family = "open_ended"
	FAMILY_SINGLE_CHOICE   Family = "single_choice"
	FAMILY_MULTIPLE_CHOICE Family = "multiple_choice"
	FAMILY_MATRIX          Family = "matrix"
	FAMILY_DEMOGRAPHIC     Family = "demographic"
	FAMILY_DATETIME        Family = "datetime"
)

// Subtype refines a Family.
type Subtype string

const (
	SUBTYPE_SINGLE    Subtype = "single"
	SUBTYPE_MULTI     Subtype = "multi"
	SUBTYPE_ESSAY     Subtype = "essay"
	SUBTYPE_NUMERICAL Subtype = "numerical"
	SUBTYPE_VERTICAL  Subtype = "vertical"
	SUBTYPE_HORIZ     Subtype = "horiz"
	SUBTYPE_MENU      Subtype = "menu"
	SUBTYPE_RATING    Subtype = "rating"
	SUBTYPE_RANKING   Subtype = "ranking"
	SUBTYPE_DESC_TEXT Subtype = "descriptive_text"
)

// QuestionType is the family/subtype pair of a question.
type QuestionType struct {
	Family  Family
	Subtype Subtype
}

// ParseQuestionType accepts the "family/subtype" notation.
func ParseQuestionType(s string) QuestionType {
	family, subtype, _ := strings.Cut(s, "/")
	return QuestionType{Family: Family(family), Subtype: Subtype(subtype)}
}

// Is reports whether the type belongs to family and, when subtypes are
// given, to one of them.
func (t QuestionType) Is(family Family, subtypes ...Subtype) bool {
	if t.Family != family {
		return false
	}
	if len(subtypes) == 0 {
		return true
	}
	for _, s := range subtypes {
		if t.Subtype == s {
			return true
		}
	}
	return false
}

func (t QuestionType) String() string {
	return string(t.Family) + "/" + string(t.Subtype)
}

// IsMultiPart reports whether answers are reported per positioned sub-question.
func (t QuestionType) IsMultiPart() bool {
	return t.Is(FAMILY_OPEN_ENDED, SUBTYPE_MULTI, SUBTYPE_NUMERICAL)
}

// IsSingleText reports whether the question takes exactly one free-text answer.
func (t QuestionType) IsSingleText() bool {
	return t.Is(FAMILY_OPEN_ENDED, SUBTYPE_ESSAY, SUBTYPE_SINGLE)
}

// Role describes what an answer option stands for.
type Role string

const (
	ROLE_ROW        Role = "row"
	ROLE_COL        Role = "col"
	ROLE_COL_CHOICE Role = "col_choice"
	ROLE_OTHER      Role = "other"
)

// FREE_TEXT_ROW is the row reference of a top-level free-text answer.
const FREE_TEXT_ROW = "0"
