package service

import (
	"context"
	"encoding/json"
)

// GithubService lists a user's public repositories on the external API. The
// payload is relayed to callers verbatim, so it stays raw JSON here.
type GithubService interface {
	ListUserRepos(ctx context.Context, username string) (json.RawMessage, error)
}
