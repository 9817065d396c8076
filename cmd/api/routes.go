package main

import (
	"net/http"
	"time"

	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// request logger backed by zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/signup", app.Handler.SignUp)
		v1.POST("/login", app.Handler.Login)

		// gateway server-to-server callback, authenticated by signature
		v1.POST("/payments/webhook", app.Handler.HandleWebhook)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/me", app.Handler.Me)

		// reference data
		protected.GET("/role-profiles/:role_profile_id", app.Handler.GetRoleProfile)

		// slots
		protected.GET("/slots", app.Handler.ListOpenSlots)
		protected.POST("/slots", app.RequireRole(model.UserRoleInterviewer), app.Handler.CreateSlot)
		protected.POST("/slots/book", app.RequireRole(model.UserRoleCandidate), app.Handler.BookSlot)

		// payments
		protected.POST("/payments/orders", app.RequireRole(model.UserRoleCandidate), app.Handler.CreateOrder)
		protected.POST("/payments/verify", app.RequireRole(model.UserRoleCandidate), app.Handler.VerifyPayment)

		// sessions
		protected.POST("/sessions/practice", app.RequireRole(model.UserRoleCandidate), app.Handler.StartPractice)
		protected.GET("/sessions/:session_id", app.Handler.GetSession)
		protected.POST("/sessions/:session_id/complete", app.RequireRole(model.UserRoleCandidate), app.Handler.CompleteInterview)
		protected.POST("/sessions/:session_id/scores", app.RequireRole(model.UserRoleInterviewer), app.Handler.SubmitScores)
		protected.POST("/sessions/:session_id/start", app.RequireRole(model.UserRoleInterviewer), app.Handler.StartSession)
		protected.POST("/sessions/:session_id/reschedule", app.RequireRole(model.UserRoleCandidate), app.Handler.RescheduleSession)
		protected.POST("/sessions/:session_id/rating", app.RequireRole(model.UserRoleCandidate), app.Handler.RateSession)
		protected.POST("/sessions/:session_id/join-token", app.Handler.CreateJoinToken)

		// progress
		protected.GET("/progress/:role_profile_id", app.RequireRole(model.UserRoleCandidate), app.Handler.GetProgress)
	}

	admin := v1.Group("/admin")
	admin.Use(app.AuthMiddleware(), app.RequireRole(model.UserRoleAdmin))
	{
		admin.POST("/role-profiles", app.Handler.CreateRoleProfile)
		admin.POST("/scoring-models", app.Handler.CreateScoringModel)
		admin.POST("/interviewers/:user_id/verify", app.Handler.VerifyInterviewer)
		admin.GET("/counts", app.Handler.AdminCounts)
	}

	return r
}
