package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/middleware"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
	Scoring *service.ScoringService
}

func NewQuizHandler(s *service.QuizService, scoring *service.ScoringService) *QuizHandler {
	return &QuizHandler{Service: s, Scoring: scoring}
}

// ListQuizzes returns the authoring view of the caller's quizzes. An
// owner with no quizzes gets an empty list, never an error.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		ownerID = middleware.OwnerID(c)
	}
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ownerId is required"})
		return
	}
	quizzes, err := h.Service.ListQuizzesForOwner(context.Background(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req struct {
		Name              string            `json:"name" binding:"required"`
		Topic             string            `json:"topic" binding:"required"`
		Grade             string            `json:"grade"`
		SchoolBoard       string            `json:"school_board"`
		NumberOfQuestions int               `json:"number_of_questions" binding:"required"`
		TimeLimitMinutes  int               `json:"time_limit_minutes" binding:"required"`
		Questions         []models.Question `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz := models.Quiz{
		Name:              req.Name,
		Topic:             req.Topic,
		Grade:             req.Grade,
		SchoolBoard:       req.SchoolBoard,
		NumberOfQuestions: req.NumberOfQuestions,
		TimeLimitMinutes:  req.TimeLimitMinutes,
		Questions:         req.Questions,
		OwnerID:           middleware.OwnerID(c),
	}
	if err := h.Service.CreateQuiz(context.Background(), &quiz); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz returns the player view: password and correct labels redacted.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.Service.GetQuiz(context.Background(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz.PlayerView())
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwnership(c, id) {
		return
	}
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateQuiz(context.Background(), id, update); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwnership(c, id) {
		return
	}
	if err := h.Service.DeleteQuiz(context.Background(), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *QuizHandler) UpdateQuestion(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwnership(c, id) {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question index"})
		return
	}
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateQuestion(context.Background(), id, index, question); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// StartQuiz is the server side of the password gate.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quiz, err := h.Scoring.StartAttempt(context.Background(), c.Param("id"), req.Name, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz started",
		"quiz":    quiz.PlayerView(),
	})
}

// SubmitAnswers scores an index-aligned answer sequence. Null entries
// arrive as empty labels and count as incorrect.
func (h *QuizHandler) SubmitAnswers(c *gin.Context) {
	var req struct {
		Name    string   `json:"name" binding:"required"`
		Answers []string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Scoring.SubmitAnswers(context.Background(), c.Param("id"), req.Name, req.Answers)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.Scoring.Leaderboard(context.Background(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// requireOwnership loads the quiz and checks it belongs to the caller.
func (h *QuizHandler) requireOwnership(c *gin.Context, quizID string) bool {
	quiz, err := h.Service.GetQuiz(context.Background(), quizID)
	if err != nil {
		h.renderError(c, err)
		return false
	}
	if quiz.OwnerID != middleware.OwnerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the quiz owner"})
		return false
	}
	return true
}

func (h *QuizHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
	case errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
	case errors.Is(err, service.ErrNotStarted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGeneration):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
