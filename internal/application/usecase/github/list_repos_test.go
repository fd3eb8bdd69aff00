package github

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamng/dev-network/pkg/apperror"
	"github.com/lamng/dev-network/pkg/logger"
)

type fakeGithubService struct {
	payload json.RawMessage
	err     error
}

func (f *fakeGithubService) ListUserRepos(_ context.Context, _ string) (json.RawMessage, error) {
	return f.payload, f.err
}

func TestListRepos_RelaysPayloadVerbatim(t *testing.T) {
	payload := json.RawMessage(`[{"name":"dotfiles"},{"name":"blog"}]`)
	uc := NewListReposUseCase(&fakeGithubService{payload: payload}, nil, 0, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), ListReposInput{Username: "octocat"})
	require.NoError(t, err)
	assert.Equal(t, payload, out.Payload)
}

func TestListRepos_AllFailuresCollapseToNotFound(t *testing.T) {
	causes := []error{
		errors.New("dial tcp: connection refused"),
		errors.New("github responded with status 404 for user \"no-such-user-xyz\""),
		errors.New("github responded with status 503 for user \"octocat\""),
	}

	for _, cause := range causes {
		uc := NewListReposUseCase(&fakeGithubService{err: cause}, nil, 0, logger.NewZapLogger("development"))
		_, err := uc.Execute(context.Background(), ListReposInput{Username: "no-such-user-xyz"})

		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, "No Github profile found", apperror.ClientMessage(err))
		assert.NotContains(t, apperror.ClientMessage(err), cause.Error(), "upstream detail must not leak")
	}
}
