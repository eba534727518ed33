package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberflow-backend/config"
	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/routes"
	"barberflow-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.AppEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("No .env file found")
	}
	if cfg.UsingInsecureJWT {
		logger.Warn("JWT_SECRET is not set, using the insecure development secret")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	var sender services.MessageSender
	if cfg.TwilioEnabled() {
		sender = services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber)
	} else {
		logger.Warn("Twilio is not configured, reminders will only be logged")
	}

	svc := services.New(db, services.Options{
		JWTSecret: []byte(cfg.JWTSecret),
		Logger:    logger,
		Sender:    sender,
	})

	scheduler := services.NewScheduler(svc, logger, nil)
	if err := scheduler.Start(cfg.ReminderCron, cfg.GoalRolloverCron); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}

	loginLimit := middleware.NewRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst)
	go func() {
		for range time.Tick(10 * time.Minute) {
			loginLimit.Cleanup(30 * time.Minute)
		}
	}()

	r := routes.SetupRouter(routes.Deps{
		Services:   svc,
		Logger:     logger,
		JWTSecret:  []byte(cfg.JWTSecret),
		LoginLimit: loginLimit,
	})
	if !cfg.IsProduction() {
		printRoutes(r)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	scheduler.Stop()
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
