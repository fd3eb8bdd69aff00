package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	githubUC "github.com/lamng/dev-network/internal/application/usecase/github"
	profileUC "github.com/lamng/dev-network/internal/application/usecase/profile"
	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/internal/domain/user"
	"github.com/lamng/dev-network/pkg/auth"
	"github.com/lamng/dev-network/pkg/logger"
)

type memProfileRepo struct {
	profiles map[uuid.UUID]*profile.Profile
	users    map[uuid.UUID]*user.User
}

func (r *memProfileRepo) denormalize(p *profile.Profile) *profile.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]profile.Experience(nil), p.Experience...)
	cp.Education = append([]profile.Education(nil), p.Education...)
	if u, ok := r.users[p.UserID]; ok {
		cp.UserName = u.Name
		cp.UserAvatar = u.Avatar
	}
	return &cp
}

func (r *memProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return r.denormalize(p), nil
}

func (r *memProfileRepo) FindAll(_ context.Context) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, r.denormalize(p))
	}
	return out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *memProfileRepo) Replace(_ context.Context, p *profile.Profile) error {
	if _, ok := r.profiles[p.UserID]; !ok {
		return profile.ErrProfileNotFound
	}
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *memProfileRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	if _, ok := r.profiles[userID]; !ok {
		return profile.ErrProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

type memPostRepo struct{}

func (r *memPostRepo) DeleteByOwner(_ context.Context, _ uuid.UUID) error { return nil }

type memUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubGithubService struct {
	payload json.RawMessage
	err     error
}

func (s *stubGithubService) ListUserRepos(_ context.Context, _ string) (json.RawMessage, error) {
	return s.payload, s.err
}

type ProfileAPITestSuite struct {
	suite.Suite
	router      *gin.Engine
	profileRepo *memProfileRepo
	userRepo    *memUserRepo
	githubSvc   *stubGithubService
	testUserID  uuid.UUID
	token       string
}

func (s *ProfileAPITestSuite) SetupTest() {
	appLogger := logger.NewZapLogger("development")

	s.testUserID = uuid.New()
	s.userRepo = &memUserRepo{users: map[uuid.UUID]*user.User{
		s.testUserID: {ID: s.testUserID, Name: "Lam Nguyen", Avatar: "https://gravatar.com/lam"},
	}}
	s.profileRepo = &memProfileRepo{
		profiles: make(map[uuid.UUID]*profile.Profile),
		users:    s.userRepo.users,
	}
	s.githubSvc = &stubGithubService{payload: json.RawMessage(`[{"name":"dotfiles"}]`)}

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtSvc.GenerateToken(s.testUserID)
	s.Require().NoError(err)
	s.token = token

	profileHandler := NewProfileHandler(
		profileUC.NewGetProfileUseCase(s.profileRepo),
		profileUC.NewListProfilesUseCase(s.profileRepo),
		profileUC.NewUpsertProfileUseCase(s.profileRepo, nil, appLogger),
		profileUC.NewAddExperienceUseCase(s.profileRepo),
		profileUC.NewRemoveExperienceUseCase(s.profileRepo),
		profileUC.NewAddEducationUseCase(s.profileRepo),
		profileUC.NewRemoveEducationUseCase(s.profileRepo),
		profileUC.NewDeleteAccountUseCase(s.profileRepo, &memPostRepo{}, s.userRepo, nil, appLogger),
	)
	githubHandler := NewGithubHandler(
		githubUC.NewListReposUseCase(s.githubSvc, nil, 0, appLogger),
	)

	gin.SetMode(gin.TestMode)
	s.router = SetupRouter(profileHandler, githubHandler, AuthMiddleware(jwtSvc), ErrorMiddleware(appLogger))
}

func TestProfileAPI(t *testing.T) {
	suite.Run(t, new(ProfileAPITestSuite))
}

func (s *ProfileAPITestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *ProfileAPITestSuite) errorMsgs(rr *httptest.ResponseRecorder) []string {
	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &body))
	msgs := make([]string, len(body.Errors))
	for i, e := range body.Errors {
		msgs[i] = e.Msg
	}
	return msgs
}

func (s *ProfileAPITestSuite) createProfile() {
	rr := s.do(http.MethodPost, "/api/profile", gin.H{
		"status":  "Developer",
		"skills":  "html, css, js",
		"company": "Acme",
	}, true)
	s.Require().Equal(http.StatusOK, rr.Code)
}

func (s *ProfileAPITestSuite) Test_GetMe_RequiresAuth() {
	rr := s.do(http.MethodGet, "/api/profile/me", nil, false)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *ProfileAPITestSuite) Test_GetMe_NoProfile() {
	rr := s.do(http.MethodGet, "/api/profile/me", nil, true)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal([]string{"There is no profile for this user"}, s.errorMsgs(rr))
}

func (s *ProfileAPITestSuite) Test_Upsert_ValidationErrors() {
	rr := s.do(http.MethodPost, "/api/profile", gin.H{"company": "Acme"}, true)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(s.errorMsgs(rr), "Status is required")
	s.Contains(s.errorMsgs(rr), "Skills is required")
}

func (s *ProfileAPITestSuite) Test_Upsert_CreateAndRead() {
	s.createProfile()

	rr := s.do(http.MethodGet, "/api/profile/me", nil, true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var dto ProfileDTO
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.Equal("Developer", dto.Status)
	s.Equal([]string{"html", "css", "js"}, dto.Skills)
	s.Equal("Lam Nguyen", dto.User.Name)
	s.Equal("https://gravatar.com/lam", dto.User.Avatar)
}

func (s *ProfileAPITestSuite) Test_List_Public() {
	s.createProfile()

	rr := s.do(http.MethodGet, "/api/profile", nil, false)
	s.Require().Equal(http.StatusOK, rr.Code)

	var dtos []ProfileDTO
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &dtos))
	s.Len(dtos, 1)
	s.Equal("Lam Nguyen", dtos[0].User.Name)
}

func (s *ProfileAPITestSuite) Test_GetByUserID_NotFoundClasses() {
	// malformed id and well-formed-but-absent id get the same client error
	rrMalformed := s.do(http.MethodGet, "/api/profile/user/not-a-uuid", nil, false)
	s.Equal(http.StatusBadRequest, rrMalformed.Code)
	s.Equal([]string{"Profile not found"}, s.errorMsgs(rrMalformed))

	rrAbsent := s.do(http.MethodGet, "/api/profile/user/"+uuid.NewString(), nil, false)
	s.Equal(http.StatusBadRequest, rrAbsent.Code)
	s.Equal([]string{"Profile not found"}, s.errorMsgs(rrAbsent))
}

func (s *ProfileAPITestSuite) Test_Experience_AddAndRemove() {
	s.createProfile()

	rr := s.do(http.MethodPut, "/api/profile/experience", gin.H{
		"title":   "Backend Engineer",
		"company": "Acme",
		"from":    "2020-01-01T00:00:00Z",
	}, true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var dto ProfileDTO
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.Require().Len(dto.Experience, 1)
	s.Equal("Backend Engineer", dto.Experience[0].Title)

	// absent id: 400, list untouched
	rrMiss := s.do(http.MethodDelete, "/api/profile/experience/"+uuid.NewString(), nil, true)
	s.Equal(http.StatusBadRequest, rrMiss.Code)
	s.Equal([]string{"There is no experience with this id"}, s.errorMsgs(rrMiss))

	rrHit := s.do(http.MethodDelete, "/api/profile/experience/"+dto.Experience[0].ID, nil, true)
	s.Require().Equal(http.StatusOK, rrHit.Code)
	s.Require().NoError(json.Unmarshal(rrHit.Body.Bytes(), &dto))
	s.Empty(dto.Experience)
}

func (s *ProfileAPITestSuite) Test_Education_ValidationAndAdd() {
	s.createProfile()

	rrBad := s.do(http.MethodPut, "/api/profile/education", gin.H{"school": "MIT"}, true)
	s.Equal(http.StatusBadRequest, rrBad.Code)
	s.Contains(s.errorMsgs(rrBad), "Degree is required")
	s.Contains(s.errorMsgs(rrBad), "FieldOfStudy is required")

	rr := s.do(http.MethodPut, "/api/profile/education", gin.H{
		"school":         "MIT",
		"degree":         "BSc",
		"field_of_study": "CS",
		"from":           "2014-09-01T00:00:00Z",
	}, true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var dto ProfileDTO
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.Require().Len(dto.Education, 1)
	s.Equal("MIT", dto.Education[0].School)
}

func (s *ProfileAPITestSuite) Test_DeleteAccount_Cascades() {
	s.createProfile()

	rr := s.do(http.MethodDelete, "/api/profile", nil, true)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"msg":"User deleted"}`, rr.Body.String())

	s.Empty(s.profileRepo.profiles)
	s.Empty(s.userRepo.users)

	rrMe := s.do(http.MethodGet, "/api/profile/me", nil, true)
	s.Equal(http.StatusBadRequest, rrMe.Code)
	rrByID := s.do(http.MethodGet, "/api/profile/user/"+s.testUserID.String(), nil, false)
	s.Equal(http.StatusBadRequest, rrByID.Code)
}

func (s *ProfileAPITestSuite) Test_GithubProxy() {
	rr := s.do(http.MethodGet, "/api/profile/github/octocat", nil, false)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`[{"name":"dotfiles"}]`, rr.Body.String())

	s.githubSvc.err = errors.New("dial tcp: connection refused")
	s.githubSvc.payload = nil
	rrFail := s.do(http.MethodGet, "/api/profile/github/no-such-user-xyz", nil, false)
	s.Equal(http.StatusNotFound, rrFail.Code)
	s.Equal([]string{"No Github profile found"}, s.errorMsgs(rrFail))
}

func (s *ProfileAPITestSuite) Test_UpsertTwice_SingleProfile() {
	s.createProfile()
	rr := s.do(http.MethodPost, "/api/profile", gin.H{
		"status": "Senior Developer",
		"skills": "go",
	}, true)
	s.Require().Equal(http.StatusOK, rr.Code)

	s.Len(s.profileRepo.profiles, 1)

	var dto ProfileDTO
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.Equal("Senior Developer", dto.Status)
	s.Equal([]string{"go"}, dto.Skills)
	s.Equal("Acme", dto.Company, fmt.Sprintf("absent fields must survive the second upsert, got %s", rr.Body.String()))
}
