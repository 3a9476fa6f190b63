package api

import (
	"time"

	"github.com/fintrack/backend/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the engine with recovery, request logging and CORS for
// the given origins.
func NewRouter(logger zerolog.Logger, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{logging.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	return r
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/health", h.Health)
	r.GET("/api/data/fetchCategories", h.FetchCategories)
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)

	protected := r.Group("/api", h.AuthMiddleware())
	protected.POST("/auth/logout", h.Logout)
	protected.POST("/auth/verify", h.Verify)

	protected.GET("/data/fetch", h.FetchData)
	protected.GET("/data/summary", h.Summary)
	protected.POST("/data/add", h.AddTransaction)
	protected.PUT("/data/update/transactionData", h.UpdateTransaction)
	protected.DELETE("/data/delete/:transactionId", h.DeleteTransaction)
	protected.POST("/data/editProperty/updateCurrentProperty", h.UpdateCurrentProperty)

	protected.POST("/settings/setGoal", h.SetGoal)
	protected.GET("/settings/getGoals", h.GetGoals)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
