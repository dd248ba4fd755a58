package question

import (
	"context"
	"fmt"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// NextQuizQuestion picks a question uniformly at random from the requested
// category, or from every question when CategoryID is 0.
//
// PreviousQuestions does not narrow the candidate set; clients may be served
// a question they have already seen.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (Question, error) {
	var (
		rows []sqlcgen.Question
		err  error
	)
	if req.CategoryID == 0 {
		rows, err = s.questions.List(ctx)
	} else {
		id, ok := toInt32(req.CategoryID)
		if !ok {
			return Question{}, fmt.Errorf("quiz category %d: %w", req.CategoryID, ErrNotFound)
		}
		rows, err = s.questions.ListByCategory(ctx, id)
	}
	if err != nil {
		return Question{}, fmt.Errorf("load quiz candidates: %w", err)
	}
	if len(rows) == 0 {
		return Question{}, fmt.Errorf("no questions in quiz category %d: %w", req.CategoryID, ErrNotFound)
	}

	s.logger.Debug().
		Int("category", req.CategoryID).
		Int("candidates", len(rows)).
		Int("previous", len(req.PreviousQuestions)).
		Msg("selecting quiz question")

	return questionToDomain(rows[s.intn(len(rows))]), nil
}
