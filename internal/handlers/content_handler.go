package handlers

import (
	"context"
	"net/http"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/service"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	Service *service.ContentService
}

func NewContentHandler(s *service.ContentService) *ContentHandler {
	return &ContentHandler{Service: s}
}

// POST /api/content/youtube
func (h *ContentHandler) GetYouTubeVideos(c *gin.Context) {
	var req models.TopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	results := h.Service.FetchVideos(context.Background(), req.Topics, req.NumResults)
	c.JSON(http.StatusOK, results)
}

// POST /api/content/articles
func (h *ContentHandler) GetArticles(c *gin.Context) {
	var req models.TopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	results := h.Service.FetchArticles(context.Background(), req.Topics, req.NumResults)
	c.JSON(http.StatusOK, results)
}
