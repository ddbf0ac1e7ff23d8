package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-skillmarket-backend/config"
	v1 "go-skillmarket-backend/internal/delivery/http/v1"
	"go-skillmarket-backend/internal/repository/mongodb"
	"go-skillmarket-backend/internal/usecase"
	"go-skillmarket-backend/pkg/auth"
	"go-skillmarket-backend/pkg/database"
	"go-skillmarket-backend/pkg/logger"
	"go-skillmarket-backend/pkg/upload"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting skillmarket backend", "port", cfg.Port)

	db, err := database.NewMongoConnection(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(ctx); err != nil {
			logger.Log.Error("Failed to disconnect from database", "error", err)
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	examRepo := mongodb.NewExamRepository(db)
	skillRepo := mongodb.NewSkillRepository(db)

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	saver := upload.NewSaver(cfg.UploadDir, cfg.MaxFileSize)

	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	userUC := usecase.NewUserUsecase(userRepo, skillRepo, jobRepo)
	jobUC := usecase.NewJobUsecase(jobRepo)
	examUC := usecase.NewExamUsecase(examRepo)
	skillUC := usecase.NewSkillUsecase(skillRepo)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:  authUC,
		UserUC:  userUC,
		JobUC:   jobUC,
		ExamUC:  examUC,
		SkillUC: skillUC,
		Tokens:  tokens,
		Saver:   saver,
		Config:  cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
