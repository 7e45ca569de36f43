package main

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"orgboard/config"
	"orgboard/internal/access"
	"orgboard/internal/db"
	"orgboard/internal/handler"
	"orgboard/internal/httpserver"
	"orgboard/internal/idempotency"
	"orgboard/internal/mq"
	"orgboard/internal/repository"
	"orgboard/internal/resilience"
	"orgboard/internal/service"
	"orgboard/internal/util"
)

func main() {
	cfg := config.Load()

	logger := util.NewLogger()
	defer logger.Sync()

	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	guard := idempotency.NewGuard(rdb, 24*time.Hour)

	producer, err := mq.NewProducer(cfg.MQ.URL)
	if err != nil {
		logger.Fatal("Failed to init MQ producer", zap.Error(err))
	}
	defer producer.Close()

	// Repositories
	userRepo := repository.NewUserRepository(dbConn)
	teamRepo := repository.NewTeamRepository(dbConn)
	boardRepo := repository.NewBoardRepository(dbConn, logger)
	taskRepo := repository.NewTaskRepository(dbConn, logger)
	assignmentRepo := repository.NewAssignmentRepository(dbConn)
	orgRepo := repository.NewOrganizationRepository(dbConn)

	gate := access.NewGate(userRepo, boardRepo, assignmentRepo)
	exec := resilience.New(logger)

	// Services
	authService := service.NewAuthService(userRepo, orgRepo, cfg.JWT.Secret)
	teamService := service.NewTeamService(teamRepo, userRepo, gate, exec, producer, logger)
	boardService := service.NewBoardService(boardRepo, taskRepo, userRepo, gate, exec, producer, logger)
	taskService := service.NewTaskService(taskRepo, userRepo, assignmentRepo, gate, exec, producer, logger)
	adminService := service.NewAdminService(userRepo, orgRepo, assignmentRepo, gate, exec, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	teamHandler := handler.NewTeamHandler(teamService)
	boardHandler := handler.NewBoardHandler(boardService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(adminService)

	router := httpserver.NewRouter(
		authHandler,
		teamHandler,
		boardHandler,
		taskHandler,
		adminHandler,
		guard,
		cfg.JWT.Secret,
		dbConn,
	)

	logger.Info("Starting workflow service", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
