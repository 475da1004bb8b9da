package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"startupcopilot/internal/application/usecase"
	"startupcopilot/internal/domain"
	"startupcopilot/internal/middleware"
)

type LessonHandler struct {
	lessons *usecase.LessonService
}

func NewLessonHandler(lessons *usecase.LessonService) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

type completeLessonReq struct {
	Stage string `json:"stage"`
}

// POST /api/v1/lessons/:id/complete
func (h *LessonHandler) Complete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	lessonID := c.Param("id")

	var req completeLessonReq
	// Тело опционально: урок может не относиться к этапу.
	_ = c.ShouldBindJSON(&req)

	res, err := h.lessons.Complete(c, userID, lessonID, domain.Stage(req.Stage))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
