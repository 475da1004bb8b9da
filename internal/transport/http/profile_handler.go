package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/infrastructure/repository"
	"startupcopilot/internal/middleware"
)

type ProfileHandler struct {
	profiles *repository.ProfileRepository
}

func NewProfileHandler(profiles *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type createProfileReq struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Timezone string `json:"timezone"`
}

// POST /api/v1/user/profile
// Профиль заводится при первом входе: id берём из токена, авторизация
// живёт снаружи.
func (h *ProfileHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown timezone"})
			return
		}
	}

	existing, err := h.profiles.GetByID(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, profileJSON(existing))
		return
	}

	p := &domain.Profile{
		ID:       userID,
		Email:    req.Email,
		Username: req.Username,
		Timezone: req.Timezone,
		Level:    1,
	}
	if err := h.profiles.Create(c, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, profileJSON(p))
}

// GET /api/v1/user/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	p, err := h.profiles.GetByID(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	rank, err := h.profiles.GetUserRank(c, userID)
	if err != nil {
		rank = 0
	}

	body := profileJSON(p)
	body["rank"] = rank
	c.JSON(http.StatusOK, body)
}

type updateTimezoneReq struct {
	Timezone string `json:"timezone" binding:"required"`
}

// PUT /api/v1/user/timezone
func (h *ProfileHandler) UpdateTimezone(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req updateTimezoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown timezone"})
		return
	}

	if err := h.profiles.UpdateTimezone(c, userID, req.Timezone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/leaderboard
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	entries, err := h.profiles.GetLeaderboard(c, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func profileJSON(p *domain.Profile) gin.H {
	return gin.H{
		"id":                 p.ID,
		"email":              p.Email,
		"username":           p.Username,
		"timezone":           p.Timezone,
		"xp":                 p.XP,
		"level":              p.Level,
		"streak":             p.Streak,
		"last_activity_date": p.LastActivityDate,
	}
}
