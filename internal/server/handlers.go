package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/domain"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// quizAllSentinel is the category type the quiz UI sends for "all categories".
const quizAllSentinel = "click"

// QuestionService is what the handlers need from the question service.
type QuestionService interface {
	ListQuestions(ctx context.Context, page int) (question.Page, error)
	GetQuestion(ctx context.Context, id int) (domain.Question, error)
	Search(ctx context.Context, term string) (question.SearchResult, error)
	ListByCategory(ctx context.Context, categoryID int) (question.CategoryQuestions, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateQuestion(ctx context.Context, req question.CreateQuestionRequest) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id int) error
	CreateCategory(ctx context.Context, categoryType string) (domain.Category, error)
}

// QuizSelector draws the next quiz question; nil means the round is over.
type QuizSelector interface {
	Next(ctx context.Context, categoryID int, previous []int) (*domain.Question, error)
}

// Handlers serves the trivia API.
type Handlers struct {
	questions QuestionService
	quiz      QuizSelector
	metrics   *metrics.Metrics
}

func NewHandlers(questions QuestionService, selector QuizSelector, m *metrics.Metrics) *Handlers {
	return &Handlers{questions: questions, quiz: selector, metrics: m}
}

type listQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"totalQuestions"`
	Categories      map[int]string    `json:"categories"`
	CurrentCategory *string           `json:"currentCategory"`
}

func (h *Handlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.questions.ListQuestions(r.Context(), queryPage(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listQuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.TotalQuestions,
		Categories:      domain.CategoryMap(page.Categories),
		CurrentCategory: page.CurrentCategory,
	})
}

func (h *Handlers) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writePathIDError(w, err)
		return
	}
	q, err := h.questions.GetQuestion(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "question": q})
}

type createQuestionRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Difficulty flexInt `json:"difficulty"`
	Category   flexInt `json:"category"`
}

func (h *Handlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	q, err := h.questions.CreateQuestion(r.Context(), question.CreateQuestionRequest{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty.Value,
		Category:   req.Category.Value,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "created": q.ID})
}

func (h *Handlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writePathIDError(w, err)
		return
	}
	if err := h.questions.DeleteQuestion(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": id})
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type searchResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"totalQuestions"`
	CurrentCategory *string           `json:"currentCategory"`
}

func (h *Handlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.questions.Search(r.Context(), req.SearchTerm)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Success:         true,
		Questions:       res.Questions,
		TotalQuestions:  res.TotalQuestions,
		CurrentCategory: res.CurrentCategory,
	})
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.questions.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": categories})
}

type createCategoryRequest struct {
	Category string `json:"category"`
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	c, err := h.questions.CreateCategory(r.Context(), req.Category)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "created": c.ID})
}

type categoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory domain.Category   `json:"current_category"`
}

func (h *Handlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writePathIDError(w, err)
		return
	}

	res, err := h.questions.ListByCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       res.Questions,
		TotalQuestions:  res.TotalQuestions,
		CurrentCategory: res.CurrentCategory,
	})
}

type quizRequest struct {
	PreviousQuestions []flexInt `json:"previous_questions"`
	QuizCategory      *struct {
		ID   flexInt `json:"id"`
		Type string  `json:"type"`
	} `json:"quiz_category"`
}

func (h *Handlers) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.QuizCategory == nil {
		httperrors.RespondValidation(w, []httperrors.FieldError{{Field: "quiz_category", Message: "is required"}})
		return
	}

	categoryID := req.QuizCategory.ID.Value
	if strings.EqualFold(req.QuizCategory.Type, quizAllSentinel) {
		categoryID = quiz.AllCategories
	}
	if categoryID < 0 {
		httperrors.RespondValidation(w, []httperrors.FieldError{{Field: "quiz_category.id", Message: "must not be negative"}})
		return
	}
	previous := make([]int, 0, len(req.PreviousQuestions))
	for _, p := range req.PreviousQuestions {
		if p.Set && p.Value > 0 {
			previous = append(previous, p.Value)
		}
	}

	q, err := h.quiz.Next(r.Context(), categoryID, previous)
	if err != nil {
		h.metrics.QuizDraw(metrics.QuizError)
		writeServiceError(w, r, err)
		return
	}
	if q == nil {
		h.metrics.QuizDraw(metrics.QuizExhausted)
	} else {
		h.metrics.QuizDraw(metrics.QuizServed)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "question": q})
}

// writeServiceError maps the domain taxonomy onto status codes. Anything
// unclassified is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]httperrors.FieldError, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, httperrors.FieldError{Field: fe.Field, Message: fe.Message})
		}
		httperrors.RespondValidation(w, fields)
	case errors.Is(err, domain.ErrValidation):
		httperrors.RespondError(w, http.StatusUnprocessableEntity, "")
	case errors.Is(err, domain.ErrAlreadyExists):
		httperrors.RespondBadRequest(w, httperrors.MsgDuplicate)
	case errors.Is(err, domain.ErrNotFound):
		httperrors.RespondNotFound(w, "")
	case errors.Is(err, context.DeadlineExceeded):
		logger := logging.FromContext(r.Context())
		logger.Warn().Err(err).Msg("request deadline exceeded")
		httperrors.RespondServiceUnavailable(w, "")
	default:
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
