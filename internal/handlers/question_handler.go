package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/assessment-engine/internal/generation"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionBankHandler struct {
	BaseHandler
	bankService       services.QuestionBankService
	generationService services.GenerationService
}

func NewQuestionBankHandler(
	bankService services.QuestionBankService,
	generationService services.GenerationService,
	logger utils.Logger,
) *QuestionBankHandler {
	return &QuestionBankHandler{
		BaseHandler:       NewBaseHandler(logger),
		bankService:       bankService,
		generationService: generationService,
	}
}

// CreateQuestionBank creates a question bank owned by the caller
// @Summary Create question bank
// @Tags question-banks
// @Accept json
// @Produce json
// @Param bank body services.CreateQuestionBankRequest true "Question bank data"
// @Success 201 {object} models.QuestionBank
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /question-banks [post]
func (h *QuestionBankHandler) CreateQuestionBank(c *gin.Context) {
	h.LogRequest(c, "Creating question bank")

	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateQuestionBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), principal, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bank)
}

// ListQuestionBanks lists the banks visible to the caller
// @Summary List question banks
// @Tags question-banks
// @Produce json
// @Success 200 {array} models.QuestionBank
// @Router /question-banks [get]
func (h *QuestionBankHandler) ListQuestionBanks(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	banks, err := h.bankService.ListBanks(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, banks)
}

// AddQuestion adds a manually authored question to a bank
// @Summary Add question to bank
// @Tags question-banks
// @Accept json
// @Produce json
// @Param id path uint true "Question bank ID"
// @Param question body services.AddQuestionRequest true "Question data"
// @Success 201 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /question-banks/{id}/questions [post]
func (h *QuestionBankHandler) AddQuestion(c *gin.Context) {
	bankID := h.parseIDParam(c, "id")
	if bankID == 0 {
		return
	}

	h.LogRequest(c, "Adding question", "bank_id", bankID)

	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	question, err := h.bankService.AddQuestion(c.Request.Context(), bankID, principal, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// ListQuestions lists the questions stored in a bank
// @Summary List bank questions
// @Tags question-banks
// @Produce json
// @Param id path uint true "Question bank ID"
// @Success 200 {array} models.Question
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /question-banks/{id}/questions [get]
func (h *QuestionBankHandler) ListQuestions(c *gin.Context) {
	bankID := h.parseIDParam(c, "id")
	if bankID == 0 {
		return
	}

	principal, ok := h.principal(c)
	if !ok {
		return
	}

	questions, err := h.bankService.ListQuestions(c.Request.Context(), bankID, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GenerateQuestions asks the text generator for questions and stores them in the bank.
// An empty outcome is not an error: the raw completion is returned for inspection.
// @Summary Generate questions
// @Tags question-banks
// @Accept json
// @Produce json
// @Param id path uint true "Question bank ID"
// @Param request body services.GenerateQuestionsRequest true "Generation parameters"
// @Success 201 {object} services.GenerationResult
// @Success 200 {object} services.GenerationResult
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /question-banks/{id}/generate [post]
func (h *QuestionBankHandler) GenerateQuestions(c *gin.Context) {
	bankID := h.parseIDParam(c, "id")
	if bankID == 0 {
		return
	}

	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Generating questions", "bank_id", bankID, "topic", req.Topic, "num_questions", req.NumQuestions)

	result, err := h.generationService.GenerateQuestions(c.Request.Context(), bankID, principal, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Outcome == generation.OutcomeEmpty {
		status = http.StatusOK
	}
	c.JSON(status, result)
}
