package question

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

// CategoryCache stores the category seed list (implemented by Redis-backed Cache).
// Get returns nil, nil on a miss.
type CategoryCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}

type questionReader interface {
	List(ctx context.Context) ([]sqlcgen.Question, error)
	Search(ctx context.Context, term string) ([]sqlcgen.Question, error)
	ListByCategory(ctx context.Context, categoryID int32) ([]sqlcgen.Question, error)
}

type categoryReader interface {
	List(ctx context.Context) ([]sqlcgen.Category, error)
	Get(ctx context.Context, id int32) (sqlcgen.Category, error)
}

type txRunner interface {
	InTx(ctx context.Context, fn func(repo *repository.QuestionRepository) error) error
}

// Service answers listing, search, create/delete and quiz requests over the
// question and category stores.
type Service struct {
	questions  questionReader
	categories categoryReader
	tx         txRunner
	cache      CategoryCache
	logger     zerolog.Logger
	intn       func(n int) int
}

type ServiceOptions struct {
	// Cache is optional; nil disables category caching.
	Cache  CategoryCache
	Logger zerolog.Logger
	// Intn picks a random index in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
}

func NewService(questions questionReader, categories categoryReader, tx txRunner, opts ServiceOptions) *Service {
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return &Service{
		questions:  questions,
		categories: categories,
		tx:         tx,
		cache:      opts.Cache,
		logger:     opts.Logger.With().Str("component", "question_service").Logger(),
		intn:       intn,
	}
}

// ListCategories returns one page of categories. It fails with ErrNotFound
// only when no categories exist at all.
func (s *Service) ListCategories(ctx context.Context, page int) ([]Category, error) {
	all, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("list categories: %w", ErrNotFound)
	}
	return Paginate(all, page), nil
}

// Categories returns every category, served from the cache when possible.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.RecordCacheLookup("error")
			s.logger.Warn().Err(err).Msg("category cache read failed")
		case cached != nil:
			metrics.RecordCacheLookup("hit")
			return cached, nil
		default:
			metrics.RecordCacheLookup("miss")
		}
	}
	return s.RefreshCategories(ctx)
}

// RefreshCategories reads categories from the store and repopulates the cache.
func (s *Service) RefreshCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, categoryToDomain(row))
	}
	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// ListQuestions returns one page of all questions plus every category label.
// An empty table is ErrNotFound; a page past the end is an empty success.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	if len(rows) == 0 {
		return QuestionPage{}, fmt.Errorf("list questions: %w", ErrNotFound)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, c.Type)
	}

	return QuestionPage{
		Questions:      questionsToDomain(Paginate(rows, page)),
		TotalQuestions: len(rows),
		Categories:     labels,
	}, nil
}

// SearchQuestions returns one page of questions whose text contains term,
// ignoring case. An empty term matches everything. A store failure is
// reported as ErrOperationFailed, like the other POST /questions branch.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (SearchResult, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: search questions: %w", ErrOperationFailed, err)
	}
	return SearchResult{
		Questions:      questionsToDomain(Paginate(rows, page)),
		TotalQuestions: len(rows),
	}, nil
}

// ListQuestionsByCategory returns one page of a category's questions and its
// label. Category id 0 is rejected with ErrInvalidArgument.
func (s *Service) ListQuestionsByCategory(ctx context.Context, categoryID, page int) (CategoryQuestions, error) {
	if categoryID == 0 {
		return CategoryQuestions{}, fmt.Errorf("category id is required: %w", ErrInvalidArgument)
	}
	id, ok := toInt32(categoryID)
	if !ok {
		return CategoryQuestions{}, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}

	category, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CategoryQuestions{}, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
		}
		return CategoryQuestions{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}

	rows, err := s.questions.ListByCategory(ctx, id)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list questions for category %d: %w", categoryID, err)
	}

	return CategoryQuestions{
		Questions:       questionsToDomain(Paginate(rows, page)),
		TotalQuestions:  len(rows),
		CurrentCategory: category.Type,
	}, nil
}

// CreateQuestion inserts a question in its own transaction. Any persistence
// failure is reported as ErrOperationFailed.
func (s *Service) CreateQuestion(ctx context.Context, req NewQuestion) (Question, error) {
	category, okCategory := toInt32(req.Category)
	difficulty, okDifficulty := toInt32(req.Difficulty)
	if !okCategory || !okDifficulty {
		return Question{}, fmt.Errorf("category or difficulty out of range: %w", ErrInvalidArgument)
	}

	var created sqlcgen.Question
	err := s.tx.InTx(ctx, func(repo *repository.QuestionRepository) error {
		row, err := repo.Insert(ctx, sqlcgen.InsertQuestionParams{
			Question:   req.Question,
			Answer:     req.Answer,
			Category:   category,
			Difficulty: difficulty,
		})
		if err != nil {
			return err
		}
		created = row
		return nil
	})
	metrics.RecordStoreOperation("create_question", err)
	if err != nil {
		s.logger.Error().Err(err).Int("category", req.Category).Msg("create question failed")
		return Question{}, fmt.Errorf("%w: create question: %w", ErrOperationFailed, err)
	}
	return questionToDomain(created), nil
}

// DeleteQuestion removes a question. Unknown ids are ErrNotFound; any other
// persistence failure is ErrOperationFailed.
func (s *Service) DeleteQuestion(ctx context.Context, questionID int) error {
	id, ok := toInt32(questionID)
	if !ok {
		return fmt.Errorf("question %d: %w", questionID, ErrNotFound)
	}

	err := s.tx.InTx(ctx, func(repo *repository.QuestionRepository) error {
		if _, err := repo.Get(ctx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("question %d: %w", questionID, ErrNotFound)
			}
			return err
		}
		affected, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("question %d: %w", questionID, ErrNotFound)
		}
		return nil
	})
	metrics.RecordStoreOperation("delete_question", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int("question_id", questionID).Msg("delete question failed")
		return fmt.Errorf("%w: delete question %d: %w", ErrOperationFailed, questionID, err)
	}
	return nil
}

func categoryToDomain(row sqlcgen.Category) Category {
	return Category{ID: int(row.ID), Type: row.Type}
}

func questionToDomain(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

func questionsToDomain(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, questionToDomain(row))
	}
	return out
}

func toInt32(v int) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}
