// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskboard/internal/delivery/api/middleware"
	"taskboard/internal/delivery/api/router/handler"
	"taskboard/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.GET("/session", r.accountHandler.VerifySession, r.authMiddleware.Authenticate)
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	usersGroup := apiV1.Group("/users")
	usersGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdministrator))
	{
		usersGroup.GET("", r.accountHandler.ListUsers)
	}

	tasksGroup := apiV1.Group("/tasks")
	{
		tasksGroup.POST("", r.taskHandler.CreateTask)
		tasksGroup.GET("", r.taskHandler.ListTasks)
		tasksGroup.GET("/:id", r.taskHandler.GetTask)
		tasksGroup.PATCH("/:id", r.taskHandler.UpdateTask)
		tasksGroup.PUT("/:id", r.taskHandler.UpdateTask)
		tasksGroup.DELETE("/:id", r.taskHandler.DeleteTask)
	}
}
