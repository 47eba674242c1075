package handlers

import (
	"context"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/service"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/utils"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	Service *service.AIService
}

func NewAIHandler(s *service.AIService) *AIHandler {
	return &AIHandler{Service: s}
}

// POST /api/ai/generate-question
func (h *AIHandler) GenerateQuestion(c *gin.Context) {
	var req struct {
		Topic      string `json:"topic" binding:"required"`
		Difficulty string `json:"difficulty"`
		Context    string `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	question, err := h.Service.GenerateQuestion(context.Background(), req.Topic, req.Difficulty, req.Context)
	if err != nil {
		utils.BadGatewayResponse(c, "Failed to generate question", err)
		return
	}
	utils.SuccessResponse(c, "Question generated", question)
}

// POST /api/ai/validate-question
func (h *AIHandler) ValidateQuestion(c *gin.Context) {
	var req struct {
		Question      string   `json:"question" binding:"required"`
		Options       []string `json:"options" binding:"required"`
		CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	result, err := h.Service.ValidateQuestion(context.Background(), req.Question, req.Options, req.CorrectAnswer)
	if err != nil {
		utils.BadGatewayResponse(c, "Failed to validate question", err)
		return
	}
	utils.SuccessResponse(c, "Question validated", result)
}

// POST /api/ai/enhance-question
func (h *AIHandler) EnhanceQuestion(c *gin.Context) {
	var req struct {
		Question      string   `json:"question" binding:"required"`
		Options       []string `json:"options" binding:"required"`
		CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	enhanced, err := h.Service.EnhanceQuestion(context.Background(), req.Question, req.Options, req.CorrectAnswer)
	if err != nil {
		utils.BadGatewayResponse(c, "Failed to enhance question", err)
		return
	}
	utils.SuccessResponse(c, "Question enhanced", enhanced)
}
