package handlers

import (
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	questionBankHandler *QuestionBankHandler
	quizHandler         *QuizHandler
	attemptHandler      *AttemptHandler
	resolver            PrincipalResolver
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	resolver PrincipalResolver,
	logger utils.Logger,
) *HandlerManager {
	if resolver == nil {
		resolver = HeaderResolver{}
	}
	return &HandlerManager{
		questionBankHandler: NewQuestionBankHandler(serviceManager.QuestionBank(), serviceManager.Generation(), logger),
		quizHandler:         NewQuizHandler(serviceManager.Quiz(), logger),
		attemptHandler:      NewAttemptHandler(serviceManager.Attempt(), logger),
		resolver:            resolver,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1", AuthMiddleware(hm.resolver))
	{
		// Question bank routes
		questionBanks := v1.Group("/question-banks")
		{
			questionBanks.POST("", hm.questionBankHandler.CreateQuestionBank)
			questionBanks.GET("", hm.questionBankHandler.ListQuestionBanks)

			// Question management
			questionBanks.POST("/:id/questions", hm.questionBankHandler.AddQuestion)
			questionBanks.GET("/:id/questions", hm.questionBankHandler.ListQuestions)
			questionBanks.POST("/:id/generate", hm.questionBankHandler.GenerateQuestions)
		}

		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)

			// Attempt routes
			quizzes.POST("/:id/attempts", hm.attemptHandler.SubmitAttempt)
			quizzes.GET("/:id/attempts", hm.attemptHandler.ListAttempts)
			quizzes.GET("/:id/attempts/export", hm.attemptHandler.ExportAttempts)
		}
	}
}
