package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lamng/dev-network/internal/application/service"
	"github.com/lamng/dev-network/internal/config"
	"github.com/lamng/dev-network/pkg/logger"
)

const requestTimeout = 10 * time.Second

type githubAdapter struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        logger.Logger
}

// NewGithubAdapter builds the outbound GitHub REST client. The token is a
// server-held credential; callers never supply their own.
func NewGithubAdapter(cfg config.Config, log logger.Logger) (service.GithubService, error) {
	if cfg.Github.APIURL == "" {
		return nil, fmt.Errorf("github API URL is not configured")
	}

	return &githubAdapter{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    cfg.Github.APIURL,
		token:      cfg.Github.Token,
		log:        log,
	}, nil
}

// ListUserRepos requests the five oldest repositories of username and returns
// the raw upstream body. Any transport error or non-2xx status is an error;
// interpreting it is the caller's concern.
func (a *githubAdapter) ListUserRepos(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=%s",
		a.baseURL, url.PathEscape(username), url.QueryEscape("created:asc"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request failed: %w", err)
	}
	req.Header.Set("User-Agent", "dev-network-api")
	if a.token != "" {
		req.Header.Set("Authorization", "token "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("github responded with status %d for user %q", resp.StatusCode, username)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read github response failed: %w", err)
	}

	return body, nil
}
