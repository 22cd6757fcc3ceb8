package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/journezy/tripplanner/internal/cache"
	"github.com/journezy/tripplanner/internal/extract"
	"github.com/journezy/tripplanner/internal/flights"
	"github.com/journezy/tripplanner/internal/handler"
	"github.com/journezy/tripplanner/internal/hotels"
	"github.com/journezy/tripplanner/internal/itinerary"
	"github.com/journezy/tripplanner/internal/llm"
	"github.com/journezy/tripplanner/internal/places"
	"github.com/journezy/tripplanner/internal/planner"
	"github.com/journezy/tripplanner/internal/ratelimit"
	"github.com/journezy/tripplanner/internal/render"
	"github.com/journezy/tripplanner/internal/search"
)

type Config struct {
	Port         string
	GeminiAPIKey string
	GeminiModel  string
	SerpAPIKey   string
	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewProviderLimiterWithDefaults()
	rateLimiter.SetProviderLimit(ratelimit.ProviderGemini, 2, 4)
	rateLimiter.SetProviderLimit(ratelimit.ProviderFlights, 5, 10)
	rateLimiter.SetProviderLimit(ratelimit.ProviderHotels, 5, 10)
	rateLimiter.SetProviderLimit(ratelimit.ProviderWeb, 5, 10)

	llmClient, err := llm.NewClient(context.Background(), llm.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	}, rateLimiter, logger)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	searchClient, err := search.NewClient(search.Config{APIKey: cfg.SerpAPIKey}, rateLimiter)
	if err != nil {
		log.Fatalf("Failed to initialize search client: %v", err)
	}

	var flightCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		flightCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		flightCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	trips := planner.New(
		extract.NewExtractor(llmClient, logger),
		flights.NewResolver(llmClient, searchClient, flightCache, logger),
		hotels.NewResolver(searchClient, searchClient, logger),
		places.NewResolver(searchClient, logger),
		itinerary.NewWriter(llmClient, logger),
		render.NewRenderer(logger),
		logger,
	)

	planHandler := handler.NewPlanHandler(
		trips,
		flights.NewResolver(llmClient, searchClient, flightCache, logger),
		llmClient,
	)

	api := e.Group("/api/v1")
	api.POST("/plan", planHandler.Plan)
	api.POST("/flights/search", planHandler.SearchFlights)
	api.POST("/flights/summary", planHandler.SummarizeFlights)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting trip planner server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),
		SerpAPIKey:   getEnv("SERPAPI_API_KEY", ""),
		CacheEnabled: getEnvBool("CACHE_ENABLED", false),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
