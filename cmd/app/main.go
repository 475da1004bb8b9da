package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"startupcopilot/config"
	"startupcopilot/internal/application/usecase"
	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
	"startupcopilot/internal/infrastructure/cache"
	"startupcopilot/internal/infrastructure/repository"
	"startupcopilot/internal/middleware"
	handlers "startupcopilot/internal/transport/http"
)

func main() {
	// 1. Загрузка конфига
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 2. Подключение к БД
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		sugar.Fatalw("failed to connect to db", "error", err)
	}

	// 3. Миграции
	sugar.Info("running migrations...")
	if err := db.AutoMigrate(
		&domain.Profile{},
		&domain.LevelDefinition{},
		&domain.Project{},
		&domain.ScorecardHistory{},
		&domain.XPTransaction{},
		&domain.DailyQuest{},
		&domain.LessonProgress{},
	); err != nil {
		sugar.Fatalw("failed to migrate db", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		sugar.Fatalw("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
	}

	// 4. Репозитории
	profileRepo := repository.NewProfileRepository(db, rdb)
	projectRepo := repository.NewProjectRepository(db)
	historyRepo := repository.NewScorecardHistoryRepository(db)
	xpRepo := repository.NewXPTransactionRepository(db)
	questRepo := repository.NewQuestRepository(db)
	lessonRepo := repository.NewLessonProgressRepository(db)
	levelRepo := repository.NewLevelDefinitionRepository(db)

	// Пороги уровней: зашитая таблица как стартовая конфигурация.
	if err := levelRepo.Seed(context.Background(), engine.FallbackLevels()); err != nil {
		sugar.Fatalw("failed to seed level definitions", "error", err)
	}
	levelCache := cache.NewLevelCache(levelRepo.List, cache.DefaultLevelTTL, nil)

	// 5. Юзкейсы
	xpSvc := usecase.NewXPService(profileRepo, xpRepo, levelCache, sugar)
	streakSvc := usecase.NewStreakService(profileRepo, xpSvc, sugar)
	scorecardSvc := usecase.NewScorecardService(projectRepo, historyRepo, sugar)
	questSvc := usecase.NewQuestService(questRepo, projectRepo, profileRepo, xpSvc, streakSvc, sugar)
	projectSvc := usecase.NewProjectService(projectRepo, scorecardSvc, questSvc, xpSvc, streakSvc, sugar)
	lessonSvc := usecase.NewLessonService(lessonRepo, xpSvc, streakSvc, questSvc, sugar)
	reportSvc := usecase.NewReportService(profileRepo, projectRepo, xpRepo, lessonRepo, questRepo, historyRepo, sugar)
	dashboardSvc := usecase.NewDashboardService(scorecardSvc, xpSvc, streakSvc, questSvc, reportSvc, sugar)

	// 6. Транспорт
	tokenManager := middleware.NewTokenManager(cfg.AccessSecret)
	rateLimiter := middleware.NewRateLimiter(rdb)

	profileHandler := handlers.NewProfileHandler(profileRepo)
	projectHandler := handlers.NewProjectHandler(projectSvc, scorecardSvc)
	gamificationHandler := handlers.NewGamificationHandler(dashboardSvc, questSvc, streakSvc, reportSvc, xpSvc)
	lessonHandler := handlers.NewLessonHandler(lessonSvc)

	router := handlers.NewRouter(
		profileHandler,
		projectHandler,
		gamificationHandler,
		lessonHandler,
		tokenManager,
		rateLimiter,
		splitOrigins(cfg.AllowedOrigins),
	)

	// 7. Запуск HTTP сервера
	port := cfg.HTTPPort
	if port == "" {
		port = ":8080"
	}
	sugar.Infow("startupcopilot running", "port", port)
	if err := router.Run(port); err != nil {
		sugar.Fatalw("failed to run server", "error", err)
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == gin.ReleaseMode {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return []string{"http://localhost:3000"}
	}
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
