// Package importer pulls questions from Open Trivia DB into the local store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

type questionSource interface {
	Fetch(ctx context.Context, params external.FetchParams) ([]external.OpenTDBQuestion, error)
}

type questionSink interface {
	Categories(ctx context.Context) ([]question.Category, error)
	CreateQuestion(ctx context.Context, req question.NewQuestion) (question.Question, error)
}

var difficultyScale = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// Result summarises one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Importer maps OpenTDB results onto seeded categories and creates them
// through the question service.
type Importer struct {
	source questionSource
	sink   questionSink
	logger zerolog.Logger
}

func New(source questionSource, sink questionSink, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		sink:   sink,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches amount questions (optionally of one difficulty) and stores every
// result whose category maps onto a local one. A failed insert stops the run.
func (i *Importer) Run(ctx context.Context, amount int, difficulty string) (Result, error) {
	if amount < 1 {
		return Result{}, errors.New("amount must be at least 1")
	}
	if difficulty != "" {
		if _, ok := difficultyScale[difficulty]; !ok {
			return Result{}, fmt.Errorf("unknown difficulty %q", difficulty)
		}
	}

	categories, err := i.sink.Categories(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load categories: %w", err)
	}

	results, err := i.source.Fetch(ctx, external.FetchParams{Amount: amount, Difficulty: difficulty})
	if err != nil {
		return Result{}, fmt.Errorf("fetch questions: %w", err)
	}

	var res Result
	for _, r := range results {
		req, ok := toNewQuestion(r, categories)
		if !ok {
			i.logger.Debug().Str("category", r.Category).Str("difficulty", r.Difficulty).Msg("skipping unmapped question")
			res.Skipped++
			continue
		}
		if _, err := i.sink.CreateQuestion(ctx, req); err != nil {
			return res, fmt.Errorf("create question: %w", err)
		}
		res.Imported++
	}

	i.logger.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("import finished")
	return res, nil
}

func toNewQuestion(r external.OpenTDBQuestion, categories []question.Category) (question.NewQuestion, bool) {
	difficulty, ok := difficultyScale[r.Difficulty]
	if !ok {
		return question.NewQuestion{}, false
	}
	categoryID, ok := matchCategory(r.Category, categories)
	if !ok {
		return question.NewQuestion{}, false
	}
	text := strings.TrimSpace(html.UnescapeString(r.Question))
	answer := strings.TrimSpace(html.UnescapeString(r.CorrectAnswer))
	if text == "" || answer == "" {
		return question.NewQuestion{}, false
	}
	return question.NewQuestion{
		Question:   text,
		Answer:     answer,
		Category:   categoryID,
		Difficulty: difficulty,
	}, true
}

// matchCategory maps an OpenTDB label like "Science: Computers" or
// "Entertainment: Film" onto a local category by its leading word.
func matchCategory(label string, categories []question.Category) (int, bool) {
	head, _, _ := strings.Cut(label, ":")
	head = strings.TrimSpace(head)
	for _, c := range categories {
		if strings.EqualFold(head, c.Type) {
			return c.ID, true
		}
	}
	for _, c := range categories {
		if strings.HasPrefix(strings.ToLower(head), strings.ToLower(c.Type)) {
			return c.ID, true
		}
	}
	return 0, false
}
