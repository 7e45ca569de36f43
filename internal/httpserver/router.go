package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orgboard/internal/handler"
	"orgboard/internal/idempotency"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	teamHandler *handler.TeamHandler,
	boardHandler *handler.BoardHandler,
	taskHandler *handler.TaskHandler,
	adminHandler *handler.AdminHandler,
	guard *idempotency.Guard,
	jwtSecret string,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/login", authHandler.Login)
	r.POST("/account", authHandler.CreateAccount)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		// creates are fenced by the idempotency guard
		idem := IdempotencyMiddleware(guard)

		auth.POST("/teams", idem, teamHandler.Create)
		auth.PUT("/teams/:id", teamHandler.Rename)
		auth.DELETE("/teams/:id", teamHandler.Delete)
		auth.GET("/teams/:id/members", teamHandler.Members)
		auth.POST("/teams/:id/members/:userId", teamHandler.AssignMember)
		auth.DELETE("/teams/:id/members/:userId", teamHandler.RemoveMember)
		auth.GET("/teams/:id/boards", boardHandler.ListForTeam)

		auth.POST("/boards", idem, boardHandler.Create)
		auth.GET("/boards/:id", boardHandler.Get)
		auth.PUT("/boards/:id", boardHandler.Rename)
		auth.DELETE("/boards/:id", boardHandler.Delete)
		auth.GET("/boards/:id/tasks", boardHandler.Tasks)
		auth.POST("/boards/:id/tasks", idem, boardHandler.CreateTask)

		auth.GET("/tasks/:id", taskHandler.Get)
		auth.PUT("/tasks/:id", taskHandler.Update)
		auth.DELETE("/tasks/:id", taskHandler.Delete)
		auth.POST("/tasks/:id/assign/:userId", idem, taskHandler.Assign)
		auth.POST("/tasks/:id/complete", taskHandler.Complete)
		auth.POST("/tasks/:id/confirm", taskHandler.Confirm)

		auth.POST("/users", idem, adminHandler.CreateUser)
		auth.GET("/users", adminHandler.ListUsers)
		auth.GET("/users/:id", adminHandler.GetUser)
		auth.PUT("/users/:id", adminHandler.UpdateUser)
		auth.DELETE("/users/:id", adminHandler.DeleteUser)
		auth.PUT("/organization", adminHandler.UpdateOrganization)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
