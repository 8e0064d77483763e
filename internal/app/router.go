package app

import (
	"github.com/SinesysTech/aluminify-sub018/internal/config"
	"github.com/SinesysTech/aluminify-sub018/internal/middleware"
	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		sessions := authGroup.Group("/sessions")
		{
			sessions.POST("/start", c.session.Start)
			sessions.PATCH("/heartbeat", c.session.Heartbeat)
			sessions.PATCH("/finalize", c.session.Finalize)
			sessions.GET("/active", c.session.Active)
			sessions.GET("", c.session.List)
		}

		professorOnly := middleware.RoleMiddleware(model.Professor)

		appointments := authGroup.Group("/appointments")
		{
			appointments.POST("", c.appointment.Create)
			appointments.GET("", c.appointment.List)
			appointments.GET("/quota", c.appointment.Quota)
			appointments.PATCH("/:id/cancel", c.appointment.Cancel)
			appointments.PATCH("/:id/confirm", professorOnly, c.appointment.Confirm)
			appointments.PATCH("/:id/reject", professorOnly, c.appointment.Reject)
		}

		authGroup.GET("/availability/slots", c.availability.Slots)

		professor := authGroup.Group("/professor")
		professor.Use(professorOnly)
		{
			professor.GET("/availability", c.availability.ListRules)
			professor.POST("/availability", c.availability.CreateRule)
			professor.PUT("/availability/:id", c.availability.UpdateRule)
			professor.DELETE("/availability/:id", c.availability.DeleteRule)

			professor.GET("/settings", c.availability.GetSettings)
			professor.PUT("/settings", c.availability.SaveSettings)
		}

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/blockages", c.availability.ListBlockages)
			admin.POST("/blockages", c.availability.CreateBlockage)
			admin.PUT("/blockages/:id", c.availability.UpdateBlockage)
			admin.DELETE("/blockages/:id", c.availability.DeleteBlockage)

			admin.POST("/reports/appointments", c.report.Generate)
			admin.GET("/reports", c.report.List)
			admin.GET("/reports/:id/download", c.report.Download)
		}
	}
}
