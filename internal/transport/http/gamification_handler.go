package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"startupcopilot/internal/application/usecase"
	"startupcopilot/internal/engine"
	"startupcopilot/internal/middleware"
)

type GamificationHandler struct {
	dashboard *usecase.DashboardService
	quests    *usecase.QuestService
	streak    *usecase.StreakService
	report    *usecase.ReportService
	xp        *usecase.XPService
}

func NewGamificationHandler(dashboard *usecase.DashboardService, quests *usecase.QuestService, streak *usecase.StreakService, report *usecase.ReportService, xp *usecase.XPService) *GamificationHandler {
	return &GamificationHandler{dashboard: dashboard, quests: quests, streak: streak, report: report, xp: xp}
}

// GET /api/v1/dashboard
func (h *GamificationHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, h.dashboard.Load(c, userID))
}

// GET /api/v1/quests/today
func (h *GamificationHandler) TodayQuest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	quest, err := h.quests.GetOrGenerate(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if quest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quest available"})
		return
	}
	c.JSON(http.StatusOK, quest)
}

// POST /api/v1/quests/:id/complete
func (h *GamificationHandler) CompleteQuest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	questID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quest id"})
		return
	}

	res, err := h.quests.Complete(c, userID, questID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !res.Success {
		// Просроченное, чужое или уже завершённое задание.
		c.JSON(http.StatusConflict, gin.H{"error": "Quest cannot be completed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/streak
func (h *GamificationHandler) StreakStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	st, err := h.streak.Status(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// POST /api/v1/streak/freeze
func (h *GamificationHandler) UseFreeze(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.streak.UseFreeze(c, userID)
	switch {
	case errors.Is(err, engine.ErrFreezeNotNeeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Streak does not need a freeze"})
	case errors.Is(err, engine.ErrFreezeAlreadyUsed):
		c.JSON(http.StatusConflict, gin.H{"error": "Freeze already used this week"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /api/v1/reports/weekly
func (h *GamificationHandler) WeeklyReport(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.report.Weekly(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not available"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/v1/level
func (h *GamificationHandler) LevelInfo(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	info, err := h.xp.LevelInfoFor(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}
