package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter mounts the API surface. Authenticated routes sit behind the
// auth middleware; everything flows through the error middleware.
func SetupRouter(
	profileHandler *ProfileHandler,
	githubHandler *GithubHandler,
	authMiddleware gin.HandlerFunc,
	errorMiddleware gin.HandlerFunc,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		profiles := api.Group("/profile")
		{
			profiles.GET("", profileHandler.List)
			profiles.GET("/user/:user_id", profileHandler.GetByUserID)
			profiles.GET("/github/:username", githubHandler.ListRepos)

			private := profiles.Group("")
			private.Use(authMiddleware)
			{
				private.GET("/me", profileHandler.GetMe)
				private.POST("", profileHandler.Upsert)
				private.DELETE("", profileHandler.DeleteAccount)
				private.PUT("/experience", profileHandler.AddExperience)
				private.DELETE("/experience/:exp_id", profileHandler.RemoveExperience)
				private.PUT("/education", profileHandler.AddEducation)
				private.DELETE("/education/:edu_id", profileHandler.RemoveEducation)
			}
		}
	}

	return router
}
