package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pitwall/internal/api/handlers"
	"pitwall/internal/api/middleware"
	"pitwall/internal/config"
	"pitwall/internal/data"
	"pitwall/internal/model"
	"pitwall/internal/sim"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if port := os.Getenv("API_PORT"); port != "" {
		cfg.API.Port = port
	}

	catalogue, dataSource := loadCatalogue(cfg, log)

	engine := sim.New(cfg.Engine, cfg.Historical, log)
	weatherClient := data.NewOpenWeatherClient(
		os.Getenv("OPENWEATHER_API_KEY"), "",
		data.NewResponseCache(cfg.API.WeatherCacheTTL),
	)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.API.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler(engine)
	compoundsHandler := handlers.NewCompoundsHandler(catalogue, dataSource)
	tyresHandler := handlers.NewTyresHandler()
	weatherHandler := handlers.NewWeatherHandler(weatherClient)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Simulate)
		api.GET("/compounds", compoundsHandler.GetCompounds)
		api.GET("/tyres/:circuit", tyresHandler.GetNomination)
		api.GET("/weather", weatherHandler.GetWeather)
	}

	addr := fmt.Sprintf(":%s", cfg.API.Port)
	log.WithField("addr", addr).Info("starting API server")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// loadCatalogue resolves the compound catalogue: the configured JSON file
// if present, otherwise the built-in fallback numbers.
func loadCatalogue(cfg *config.Config, log *logrus.Logger) (map[string]model.CompoundParams, string) {
	if cfg.CompoundsFile == "" {
		return data.FallbackCompounds(), "fallback"
	}
	catalogue, err := data.LoadCompoundsJSON(cfg.CompoundsFile)
	if err != nil {
		log.WithError(err).WithField("file", cfg.CompoundsFile).
			Warn("compound catalogue unreadable, using fallback")
		return data.FallbackCompounds(), "fallback"
	}
	return catalogue, cfg.CompoundsFile
}
