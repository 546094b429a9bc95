package survey

import "fmt"

// AmbiguousHeadingError is returned when a heading lookup matches more than one question.
type AmbiguousHeadingError struct {
	Heading string
	Count   int
}

func (e *AmbiguousHeadingError) Error() string {
	return fmt.Sprintf("heading %q matches %d questions", e.Heading, e.Count)
}

// MalformedQuestionError reports a question definition that violates the model's invariants.
type MalformedQuestionError struct {
	QuestionID string
	Reason     string
}

func (e *MalformedQuestionError) Error() string {
	return fmt.Sprintf("malformed question %s: %s", e.QuestionID, e.Reason)
}

// MalformedResponseError reports raw answers that do not fit their question.
type MalformedResponseError struct {
	QuestionID string
	Reason     string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response for question %s: %s", e.QuestionID, e.Reason)
}

// UnsupportedQuestionTypeError is returned for question types the parser cannot normalize.
type UnsupportedQuestionTypeError struct {
	QuestionID string
	Type       QuestionType
}

func (e *UnsupportedQuestionTypeError) Error() string {
	return fmt.Sprintf("unsupported question type %s (question %s)", e.Type, e.QuestionID)
}
