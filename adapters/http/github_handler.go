package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	githubUC "github.com/lamng/dev-network/internal/application/usecase/github"
)

type GithubHandler struct {
	listRepos *githubUC.ListReposUseCase
}

func NewGithubHandler(uc *githubUC.ListReposUseCase) *GithubHandler {
	return &GithubHandler{listRepos: uc}
}

// ListRepos handles GET /api/profile/github/:username. The upstream payload
// is relayed as-is on success.
func (h *GithubHandler) ListRepos(c *gin.Context) {
	output, err := h.listRepos.Execute(c.Request.Context(), githubUC.ListReposInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", output.Payload)
}
