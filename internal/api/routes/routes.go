package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/resumecraft/internal/api/handlers"
	"github.com/yoockh/resumecraft/internal/api/middleware"
)

type Deps struct {
	Authenticator middleware.Authenticator

	Auth     *handlers.AuthHandler
	Resume   *handlers.ResumeHandler
	AI       *handlers.AIHandler
	Feedback *handlers.FeedbackHandler
	Admin    *handlers.AdminHandler
	WS       *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	required := middleware.Auth(d.Authenticator)
	optional := middleware.OptionalAuth(d.Authenticator)

	authG := api.Group("/auth")
	authG.POST("/register", d.Auth.Register)
	authG.POST("/login", d.Auth.Login)
	authG.POST("/google", d.Auth.Google)
	authG.POST("/forgot-password", d.Auth.ForgotPassword)
	authG.POST("/reset-password", d.Auth.ResetPassword)
	authG.GET("/me", required, d.Auth.Me)

	// stateless document endpoints; export saves for signed-in callers
	docs := api.Group("/resumes", optional)
	docs.POST("/preview", d.Resume.Preview)
	docs.POST("/export", d.Resume.Export)
	docs.POST("/analyze", d.Resume.Analyze)

	resumes := api.Group("/resumes", required)
	resumes.POST("", d.Resume.Save)
	resumes.GET("", d.Resume.List)
	resumes.GET("/:id", d.Resume.Get)
	resumes.PUT("/:id", d.Resume.Update)
	resumes.DELETE("/:id", d.Resume.Delete)
	resumes.POST("/:id/score", d.Resume.Score)
	resumes.GET("/:id/pdf", d.Resume.Download)

	ai := api.Group("/ai", optional)
	ai.POST("/summary", d.AI.Summary)
	ai.POST("/skills", d.AI.Skills)
	ai.POST("/parse", d.AI.Parse)

	api.POST("/feedback", optional, d.Feedback.Submit)

	admin := api.Group("/admin", required, middleware.RequireAdmin())
	admin.GET("/stats", d.Admin.Stats)
	admin.GET("/users", d.Admin.Users)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)
	admin.GET("/resumes", d.Admin.Resumes)
	admin.DELETE("/resumes/:id", d.Admin.DeleteResume)
	admin.GET("/feedback", d.Admin.Feedback)
	admin.DELETE("/feedback/:id", d.Admin.DeleteFeedback)

	api.GET("/ws/preview", d.WS.Preview)
}
