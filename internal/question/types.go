package question

import (
	"fmt"
	"strconv"
	"strings"
)

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// Category is read-only seed data.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is the payload delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionPage is one page of the full question listing.
type QuestionPage struct {
	Questions      []Question
	TotalQuestions int
	Categories     []string
}

// SearchResult is one page of questions matching a search term.
type SearchResult struct {
	Questions      []Question
	TotalQuestions int
}

// CategoryQuestions is one page of questions filtered by category.
type CategoryQuestions struct {
	Questions       []Question
	TotalQuestions  int
	CurrentCategory string
}

// NewQuestion carries the fields required to create a question.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// QuizRequest asks for the next quiz question. CategoryID 0 means all categories.
type QuizRequest struct {
	PreviousQuestions []int
	CategoryID        int
}

// IntValue decodes from either a JSON number or a numeric string; the web
// client posts <select> values as strings.
type IntValue int

func (v *IntValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer value %s", data)
	}
	*v = IntValue(n)
	return nil
}

// createQuestionRequest is the request schema for question creation.
type createQuestionRequest struct {
	Question   string   `json:"question" validate:"required"`
	Answer     string   `json:"answer" validate:"required"`
	Category   IntValue `json:"category" validate:"required,gte=1"`
	Difficulty IntValue `json:"difficulty" validate:"required,gte=1"`
}

// postQuestionsRequest covers both shapes accepted by POST /questions: the
// presence of searchTerm selects a search, anything else is a create.
type postQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm"`
	createQuestionRequest
}

type quizCategory struct {
	ID   IntValue `json:"id" validate:"gte=0"`
	Type string   `json:"type"`
}

type quizRequest struct {
	PreviousQuestions []IntValue    `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category" validate:"required"`
}
