package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/api"
	"flockreads-backend-go/internal/config"
	"flockreads-backend-go/internal/core"
	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/middleware"
)

func main() {
	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	releaseMode := strings.ToLower(appConfig.GinMode) == "release"
	var zapLogger *zap.Logger
	if releaseMode {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded, logger initialized.")

	// --- 3. Initialize Firebase Admin SDK clients ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	clients, err := db.NewClients(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer func() {
		if err := clients.Close(); err != nil {
			zapLogger.Warn("Failed to close Firestore client", zap.Error(err))
		}
	}()
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	// --- 4. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	groupRepo := db.NewFirestoreGroupRepository(clients.Firestore)
	goalRepo := db.NewFirestoreGoalRepository(clients.Firestore)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 5. Initialize Services ---
	accessService := core.NewAccessService(userRepo, zapLogger)
	membershipService := core.NewMembershipService(userRepo, groupRepo, zapLogger)
	statsService := core.NewStatsService(userRepo, groupRepo, goalRepo, zapLogger)
	userService := core.NewUserService(userRepo, groupRepo, zapLogger)
	goalService := core.NewGoalService(goalRepo, groupRepo, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- 6. Setup Gin HTTP Engine ---
	if releaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 7. Apply Global Middleware (order matters) ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	// --- 8. Setup API Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		clients,
		accessService,
		membershipService,
		statsService,
		userService,
		goalService,
	)

	// --- 9. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 10. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
