package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"startupcopilot/internal/middleware"
)

func NewRouter(
	profileHandler *ProfileHandler,
	projectHandler *ProjectHandler,
	gamificationHandler *GamificationHandler,
	lessonHandler *LessonHandler,
	tm *middleware.TokenManager,
	limiter *middleware.RateLimiter,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(tm))
	{
		user := api.Group("/user")
		{
			user.POST("/profile", profileHandler.Create)
			user.GET("/profile", profileHandler.GetProfile)
			user.PUT("/timezone", profileHandler.UpdateTimezone)
		}

		project := api.Group("/projects")
		{
			project.POST("", limiter.Limit("project_create", 5, 1*time.Minute), projectHandler.Create)
			project.GET("/active", projectHandler.GetActive)
			project.GET("/:id", projectHandler.GetOne)
			project.GET("/:id/scorecard", projectHandler.GetScorecard)

			// Автосейв канвасов шлёт мутации очередями, лимит широкий.
			save := project.Group("")
			save.Use(limiter.Limit("project_save", 120, 1*time.Minute))
			{
				save.PUT("/:id/stage", projectHandler.SetStage)
				save.PUT("/:id/artifacts", projectHandler.SaveArtifacts)
				save.PUT("/:id/bmc", projectHandler.SaveBMC)
				save.PUT("/:id/vpc", projectHandler.SaveVPC)
				save.PUT("/:id/unit-economics", projectHandler.SaveUnitEconomics)
				save.PUT("/:id/progress", projectHandler.SaveProgress)
			}
		}

		api.GET("/dashboard", gamificationHandler.Dashboard)
		api.GET("/level", gamificationHandler.LevelInfo)
		api.GET("/leaderboard", profileHandler.Leaderboard)

		quest := api.Group("/quests")
		{
			quest.GET("/today", gamificationHandler.TodayQuest)
			quest.POST("/:id/complete", limiter.Limit("quest_complete", 10, 1*time.Minute), gamificationHandler.CompleteQuest)
		}

		streak := api.Group("/streak")
		{
			streak.GET("", gamificationHandler.StreakStatus)
			streak.POST("/freeze", limiter.Limit("streak_freeze", 3, 1*time.Minute), gamificationHandler.UseFreeze)
		}

		api.GET("/reports/weekly", gamificationHandler.WeeklyReport)

		api.POST("/lessons/:id/complete", limiter.Limit("lesson_complete", 30, 1*time.Minute), lessonHandler.Complete)
	}

	return r
}
