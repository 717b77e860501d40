package router

import (
	"activity-service/config"
	"activity-service/handler"
	"activity-service/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.PrometheusMiddleware("activity-service"))

	h := handler.New(cfg)

	// Activity feed adapters
	r.GET("/activity/github", h.GetGitHubActivity)
	r.GET("/activity/leetcode", h.GetLeetCodeActivity)

	// Same adapters under the /api prefix the site widget uses
	r.GET("/api/activity/github", h.GetGitHubActivity)
	r.GET("/api/activity/leetcode", h.GetLeetCodeActivity)

	// Static portfolio content
	r.GET("/api/projects", handler.GetProjects)
	r.GET("/api/experience", handler.GetExperience)
	r.GET("/api/profile", handler.GetProfile)

	// Health check endpoints
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "activity-service"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "activity-service"})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
