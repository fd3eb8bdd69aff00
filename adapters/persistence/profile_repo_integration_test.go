package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/internal/domain/user"
	"github.com/lamng/dev-network/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
	userRepo    user.Repository
	testUser    *user.User
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	appLogger := logger.NewZapLogger("development")
	s.profileRepo = NewPostgresProfileRepo(pool, appLogger)
	s.userRepo = NewPostgresUserRepo(pool)

	s.testUser = &user.User{
		ID:     uuid.New(),
		Name:   "Test Owner",
		Email:  "owner@example.com",
		Avatar: "https://gravatar.com/owner",
	}
	query := `INSERT INTO users (id, name, email, avatar) VALUES ($1, $2, $3, $4)`
	_, err = pool.Exec(ctx, query, s.testUser.ID, s.testUser.Name, s.testUser.Email, s.testUser.Avatar)
	if err != nil {
		s.T().Fatalf("Failed to seed user: %s", err)
	}
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func (s *ProfileRepoIntegrationTestSuite) Test_UpsertTwice_KeepsSingleRow() {
	ctx := context.Background()
	now := time.Now().UTC()

	p := &profile.Profile{
		UserID:    s.testUser.ID,
		Status:    "Developer",
		Skills:    []string{"html", "css", "js"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	p.Status = "Senior Developer"
	p.Skills = []string{"go"}
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	var count int
	err := s.dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE user_id = $1`, s.testUser.ID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)

	stored, err := s.profileRepo.FindByUserID(ctx, s.testUser.ID)
	s.Require().NoError(err)
	s.Equal("Senior Developer", stored.Status)
	s.Equal([]string{"go"}, stored.Skills)
	s.Equal("Test Owner", stored.UserName)
	s.Equal("https://gravatar.com/owner", stored.UserAvatar)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Replace_PersistsEmbeddedLists() {
	ctx := context.Background()
	now := time.Now().UTC()

	p := &profile.Profile{
		UserID:    s.testUser.ID,
		Status:    "Developer",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	to := now.Add(24 * time.Hour)
	p.Experience = []profile.Experience{{
		ID:      uuid.New(),
		Title:   "Backend Engineer",
		Company: "Acme",
		From:    now,
		To:      &to,
	}}
	p.Education = []profile.Education{{
		ID:           uuid.New(),
		School:       "MIT",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         now,
		Current:      true,
	}}
	s.Require().NoError(s.profileRepo.Replace(ctx, p))

	stored, err := s.profileRepo.FindByUserID(ctx, s.testUser.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Experience, 1)
	s.Equal("Backend Engineer", stored.Experience[0].Title)
	s.Require().NotNil(stored.Experience[0].To)
	s.Require().Len(stored.Education, 1)
	s.True(stored.Education[0].Current)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindByUserID_Absent() {
	_, err := s.profileRepo.FindByUserID(context.Background(), uuid.New())
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_DeleteByUserID() {
	ctx := context.Background()
	now := time.Now().UTC()

	other := &user.User{ID: uuid.New(), Name: "Doomed", Email: "doomed@example.com"}
	_, err := s.dbPool.Exec(ctx, `INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`, other.ID, other.Name, other.Email)
	s.Require().NoError(err)

	p := &profile.Profile{UserID: other.ID, Status: "Developer", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	s.Require().NoError(s.profileRepo.DeleteByUserID(ctx, other.ID))
	_, err = s.profileRepo.FindByUserID(ctx, other.ID)
	s.ErrorIs(err, profile.ErrProfileNotFound)

	s.ErrorIs(s.profileRepo.DeleteByUserID(ctx, other.ID), profile.ErrProfileNotFound)

	s.Require().NoError(s.userRepo.Delete(ctx, other.ID))
	s.ErrorIs(s.userRepo.Delete(ctx, other.ID), user.ErrUserNotFound)
}
