package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Firesoulcoder/prompt-to-site-generator/config"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/ai"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/api"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/auth"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/projects"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/storage/postgres"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/web"
)

func main() {
	// Load environment variables from a .env file before viper reads config.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---

	// Project store: the hosted database being unreachable must not abort
	// startup; the store degrades to the offline fallback instead.
	var remote projects.Remote
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Printf("WARN: Could not connect to the hosted project store, saves will degrade to the offline store: %v", err)
		} else {
			defer db.Close()
			remote = projects.NewRepo(db)
			log.Println("Connected to the hosted project store.")
		}
	}
	store := projects.NewStore(remote, projects.NewOfflineStore(cfg.OfflineStorePath))

	// Session cache: redis when configured, in-memory otherwise.
	var sessionCache auth.TokenCache
	if cfg.RedisAddr != "" {
		redisCache, err := auth.NewRedisCache(cfg.RedisAddr)
		if err != nil {
			log.Printf("WARN: Could not connect to redis, using in-memory session cache: %v", err)
			sessionCache = auth.NewMemoryCache()
		} else {
			sessionCache = redisCache
			log.Println("Using redis session cache.")
		}
	} else {
		sessionCache = auth.NewMemoryCache()
	}

	identityClient := auth.NewClient(cfg.IdentityURL, cfg.IdentityAnonKey)
	sessions := auth.NewManager(identityClient, sessionCache)

	generator := ai.NewGenerator(ai.Options{
		APIKey:    cfg.OpenRouterKey,
		BaseURL:   cfg.OpenRouterBaseURL,
		Model:     cfg.GenerationModel,
		MaxTokens: cfg.MaxOutputTokens,
		SiteName:  cfg.SiteName,
		SiteURL:   cfg.SiteURL,
	})

	apiHandler := api.NewAPIHandler(generator, store, sessions)

	webHandler, err := web.NewHandler()
	if err != nil {
		log.Fatalf("Cannot parse page templates: %v", err)
	}

	// --- Router Setup ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.FrontendOrigin != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = []string{cfg.FrontendOrigin}
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
		router.Use(cors.New(corsConfig))
	}

	api.RegisterRoutes(router, apiHandler, sessions)
	webHandler.Register(router)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Set timeouts to prevent slow client attacks
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server listen error: %s\n", err)
		}
		log.Println("Server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown error: %v", err)
	} else {
		log.Println("Server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
