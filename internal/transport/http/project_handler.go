package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"startupcopilot/internal/application/usecase"
	"startupcopilot/internal/domain"
	"startupcopilot/internal/middleware"
)

type ProjectHandler struct {
	projects  *usecase.ProjectService
	scorecard *usecase.ScorecardService
}

func NewProjectHandler(projects *usecase.ProjectService, scorecard *usecase.ScorecardService) *ProjectHandler {
	return &ProjectHandler{projects: projects, scorecard: scorecard}
}

type createProjectReq struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.projects.Create(c, userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/v1/projects/active
func (h *ProjectHandler) GetActive(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	p, err := h.projects.GetActive(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/v1/projects/:id
func (h *ProjectHandler) GetOne(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	p, err := h.projects.Get(c, userID, projectID)
	if err != nil {
		h.mutate(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type setStageReq struct {
	Stage string `json:"stage" binding:"required"`
}

// PUT /api/v1/projects/:id/stage
func (h *ProjectHandler) SetStage(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	var req setStageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stage := domain.Stage(req.Stage)
	if !stage.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown stage"})
		return
	}

	h.mutate(c, h.projects.SetStage(c, userID, projectID, stage))
}

// PUT /api/v1/projects/:id/artifacts
func (h *ProjectHandler) SaveArtifacts(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	var artifacts domain.Artifacts
	if err := c.ShouldBindJSON(&artifacts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, h.projects.SaveArtifacts(c, userID, projectID, artifacts))
}

// PUT /api/v1/projects/:id/bmc
func (h *ProjectHandler) SaveBMC(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	var bmc domain.BMCData
	if err := c.ShouldBindJSON(&bmc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, h.projects.SaveBMC(c, userID, projectID, bmc))
}

// PUT /api/v1/projects/:id/vpc
func (h *ProjectHandler) SaveVPC(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	var vpc domain.VPCData
	if err := c.ShouldBindJSON(&vpc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, h.projects.SaveVPC(c, userID, projectID, vpc))
}

// PUT /api/v1/projects/:id/unit-economics
func (h *ProjectHandler) SaveUnitEconomics(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	var ue domain.UnitEconomics
	if err := c.ShouldBindJSON(&ue); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, h.projects.SaveUnitEconomics(c, userID, projectID, ue))
}

// PUT /api/v1/projects/:id/progress
func (h *ProjectHandler) SaveProgress(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	var progress domain.ProgressData
	if err := c.ShouldBindJSON(&progress); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := progress.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, h.projects.SaveProgress(c, userID, projectID, progress))
}

// GET /api/v1/projects/:id/scorecard
func (h *ProjectHandler) GetScorecard(c *gin.Context) {
	userID, projectID, ok := h.ids(c)
	if !ok {
		return
	}

	if _, err := h.projects.Get(c, userID, projectID); err != nil {
		h.mutate(c, err)
		return
	}

	sc, err := h.scorecard.Recompute(c, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *ProjectHandler) ids(c *gin.Context) (userID, projectID uuid.UUID, ok bool) {
	userID, ok = middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, projectID, true
}

func (h *ProjectHandler) mutate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
