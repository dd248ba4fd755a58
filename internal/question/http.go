package question

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/auth"
	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/validation"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Permissions checked on mutating routes when auth is enabled.
const (
	PermCreateQuestions = "post:questions"
	PermDeleteQuestions = "delete:questions"
)

type questionService interface {
	ListCategories(ctx context.Context, page int) ([]Category, error)
	ListQuestions(ctx context.Context, page int) (QuestionPage, error)
	SearchQuestions(ctx context.Context, term string, page int) (SearchResult, error)
	ListQuestionsByCategory(ctx context.Context, categoryID, page int) (CategoryQuestions, error)
	CreateQuestion(ctx context.Context, req NewQuestion) (Question, error)
	DeleteQuestion(ctx context.Context, questionID int) error
	NextQuizQuestion(ctx context.Context, req QuizRequest) (Question, error)
}

// Authorizer gates mutating routes on a permission.
type Authorizer interface {
	Authorize(r *http.Request, perm string) (*jwt.Claims, error)
	RequirePermission(perm string) func(http.Handler) http.Handler
}

// HTTPHandler exposes the question, category and quiz REST endpoints.
type HTTPHandler struct {
	svc    questionService
	authz  Authorizer
	logger zerolog.Logger
}

// NewHTTPHandler constructs the handler. authz may be nil to leave every route open.
func NewHTTPHandler(svc questionService, authz Authorizer, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		authz:  authz,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// RegisterRoutes mounts every endpoint on r.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.listCategories)
	r.Get("/categories/{id}/questions", h.listQuestionsByCategory)
	r.Get("/questions", h.listQuestions)
	r.Post("/questions", h.postQuestions)
	r.With(h.require(PermDeleteQuestions)).Delete("/questions/{id}", h.deleteQuestion)
	r.Post("/quizzes", h.nextQuizQuestion)
}

func (h *HTTPHandler) require(perm string) func(http.Handler) http.Handler {
	if h.authz == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return h.authz.RequirePermission(perm)
}

type categoriesResponse struct {
	Categories []Category `json:"categories"`
}

func (h *HTTPHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context(), ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

type questionsResponse struct {
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	Categories     []string   `json:"categories"`
}

func (h *HTTPHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListQuestions(r.Context(), ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questionsResponse{
		Questions:      page.Questions,
		TotalQuestions: page.TotalQuestions,
		Categories:     page.Categories,
	})
}

type searchResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

// postQuestions searches when the body carries searchTerm and creates otherwise.
func (h *HTTPHandler) postQuestions(w http.ResponseWriter, r *http.Request) {
	var req postQuestionsRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.SearchTerm != nil {
		result, err := h.svc.SearchQuestions(r.Context(), *req.SearchTerm, ParsePage(r.URL.Query().Get("page")))
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, searchResponse{
			Success:        true,
			Questions:      result.Questions,
			TotalQuestions: result.TotalQuestions,
		})
		return
	}

	if h.authz != nil {
		if _, err := h.authz.Authorize(r, PermCreateQuestions); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	if err := validation.Struct(&req.createQuestionRequest); err != nil {
		httperrors.RespondUnprocessable(w, err.Error())
		return
	}

	created, err := h.svc.CreateQuestion(r.Context(), NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int(req.Category),
		Difficulty: int(req.Difficulty),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info().Int("question_id", created.ID).Msg("question created")
	http.Redirect(w, r, "/questions", http.StatusFound)
}

type deleteResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

func (h *HTTPHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Success: true, Deleted: id})
}

type categoryQuestionsResponse struct {
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

func (h *HTTPHandler) listQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	result, err := h.svc.ListQuestionsByCategory(r.Context(), id, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryQuestionsResponse{
		Questions:       result.Questions,
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: result.CurrentCategory,
	})
}

type quizResponse struct {
	Success  bool     `json:"success"`
	Question Question `json:"question"`
}

func (h *HTTPHandler) nextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := validation.Struct(&req); err != nil {
		httperrors.RespondUnprocessable(w, err.Error())
		return
	}

	previous := make([]int, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		previous = append(previous, int(id))
	}

	q, err := h.svc.NextQuizQuestion(r.Context(), QuizRequest{
		PreviousQuestions: previous,
		CategoryID:        int(req.QuizCategory.ID),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Success: true, Question: q})
}

// decode reads a JSON body into dst. An empty body is a schema failure (422);
// anything that is not valid JSON for dst is a bad request (400).
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		httperrors.RespondUnprocessable(w, "")
	default:
		h.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("malformed request body")
		httperrors.RespondBadRequest(w)
	}
	return false
}

// pathID parses the {id} URL parameter. Non-numeric and negative ids never
// name a resource.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	httperrors.RespondStatus(w, status)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrOperationFailed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
