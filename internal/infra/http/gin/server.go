package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"bedspace/internal/infra/config"
	"bedspace/internal/infra/obs"
)

type PremisesHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Capacity(c *gin.Context)
}

type SearchHTTP interface {
	Search(c *gin.Context)
}

type OccupancyHTTP interface {
	National(c *gin.Context)
}

type Handlers struct {
	Premises  PremisesHTTP
	Search    SearchHTTP
	Occupancy OccupancyHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Premises != nil {
		api.GET("/premises", h.Premises.List)
		api.GET("/premises/:id", h.Premises.Get)
		api.GET("/premises/:id/capacity", h.Premises.Capacity)
	}
	if h.Search != nil {
		api.POST("/spaces/search", h.Search.Search)
	}
	if h.Occupancy != nil {
		api.GET("/occupancy/national", h.Occupancy.National)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
