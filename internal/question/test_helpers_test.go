package question

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

var errFakeFK = errors.New("insert or update on table \"questions\" violates foreign key constraint")

// memStore implements the sqlc query surface in memory.
type memStore struct {
	mu         sync.Mutex
	categories []sqlcgen.Category
	questions  map[int32]sqlcgen.Question
	nextID     int32

	listErr   error
	insertErr error
	deleteErr error
}

func newMemStore() *memStore {
	return &memStore{questions: map[int32]sqlcgen.Question{}, nextID: 1}
}

func seededStore() *memStore {
	s := newMemStore()
	s.categories = []sqlcgen.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
	return s
}

func (s *memStore) add(text, answer string, category, difficulty int32) sqlcgen.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := sqlcgen.Question{ID: s.nextID, Question: text, Answer: answer, Category: category, Difficulty: difficulty}
	s.questions[q.ID] = q
	s.nextID++
	return q
}

func (s *memStore) sorted(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	out := make([]sqlcgen.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) ListQuestions(ctx context.Context) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.sorted(func(sqlcgen.Question) bool { return true }), nil
}

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

func (s *memStore) SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	needle := strings.ToLower(likeUnescaper.Replace(term))
	return s.sorted(func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (s *memStore) ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.sorted(func(q sqlcgen.Question) bool { return q.Category == category }), nil
}

func (s *memStore) GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return sqlcgen.Question{}, pgx.ErrNoRows
	}
	return q, nil
}

func (s *memStore) InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	if s.insertErr != nil {
		return sqlcgen.Question{}, s.insertErr
	}
	if _, err := s.GetCategory(ctx, arg.Category); err != nil {
		return sqlcgen.Question{}, errFakeFK
	}
	return s.add(arg.Question, arg.Answer, arg.Category, arg.Difficulty), nil
}

func (s *memStore) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	if _, ok := s.questions[id]; !ok {
		return 0, nil
	}
	delete(s.questions, id)
	return 1, nil
}

func (s *memStore) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sqlcgen.Category(nil), s.categories...), nil
}

func (s *memStore) GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return sqlcgen.Category{}, pgx.ErrNoRows
}

// memTx runs fn directly against the store; there is nothing to roll back.
type memTx struct {
	store *memStore
	calls int
}

func (m *memTx) InTx(ctx context.Context, fn func(repo *repository.QuestionRepository) error) error {
	m.calls++
	return fn(repository.NewQuestionRepository(m.store))
}

// memCache is an in-process CategoryCache.
type memCache struct {
	categories []Category
	gets, sets int
	getErr     error
}

func (c *memCache) Get(ctx context.Context) ([]Category, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.categories, nil
}

func (c *memCache) Set(ctx context.Context, categories []Category) error {
	c.sets++
	c.categories = categories
	return nil
}

func newTestService(store *memStore, opts ServiceOptions) (*Service, *memTx) {
	opts.Logger = zerolog.Nop()
	tx := &memTx{store: store}
	svc := NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		tx,
		opts,
	)
	return svc, tx
}

// fill adds n questions spread round-robin over categories 1..3.
func fill(store *memStore, n int) {
	for i := 0; i < n; i++ {
		store.add("Question "+string(rune('A'+i%26)), "answer", int32(i%3+1), 1)
	}
}
