// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/transito-cc/backend-go/internal/api/handlers"
	"github.com/transito-cc/backend-go/internal/api/middleware"
	"github.com/transito-cc/backend-go/internal/service"
)

func NewRouter(reportService *service.ReportService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if reportService != nil {
		reportHandler := handlers.NewReportHandler(reportService)
		reportGroup := apiGroup.Group("/report")
		{
			reportGroup.GET("/summary", reportHandler.GetSummary)
			reportGroup.GET("/deliveries", reportHandler.GetDeliveries)
			reportGroup.GET("/no-sale", reportHandler.GetNoSale)
			reportGroup.GET("/detail", reportHandler.GetDetail)
			reportGroup.GET("/weekly", reportHandler.GetWeekly)
			reportGroup.GET("/top-executives", reportHandler.GetTopExecutives)
			reportGroup.GET("/backoffice", reportHandler.GetBackOffice)
			reportGroup.GET("/cancelled", reportHandler.GetCancelled)
			reportGroup.GET("/filters", reportHandler.GetFilterOptions)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
