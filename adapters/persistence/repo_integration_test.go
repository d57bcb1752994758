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

	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/domain/skill"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger

	profileRepo    profile.Repository
	skillRepo      skill.Repository
	experienceRepo experience.Repository
	projectRepo    project.Repository
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	s.testLogger = logger.NewNop()

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

	s.profileRepo = NewPostgresProfileRepo(pool, s.testLogger)
	s.skillRepo = NewPostgresSkillRepo(pool, s.testLogger)
	s.experienceRepo = NewPostgresExperienceRepo(pool, s.testLogger)
	s.projectRepo = NewPostgresProjectRepo(pool, s.testLogger)
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_Profile_FetchBeforeUpsert_IsNotFound() {
	_, err := s.profileRepo.Fetch(context.Background())
	s.Require().Error(err)
	s.Assert().True(apperror.IsNotFound(err))
}

func (s *RepoIntegrationTestSuite) Test_Profile_UpsertAndFetch() {
	ctx := context.Background()

	p := &profile.Profile{
		Name:     "Lam Nguyen",
		Title:    "Engineer",
		Email:    "lam@example.com",
		Location: "Da Nang",
		SocialLinks: []profile.SocialLink{
			{Platform: "github", URL: "https://github.com/lamnguyen", Icon: "github"},
		},
	}
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	got, err := s.profileRepo.Fetch(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("Lam Nguyen", got.Name)
	s.Require().Len(got.SocialLinks, 1)
	s.Assert().Equal("github", got.SocialLinks[0].Platform)

	// Upsert again hits the same singleton row.
	p.Title = "Senior Engineer"
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))

	got, err = s.profileRepo.Fetch(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("Senior Engineer", got.Title)
}

func (s *RepoIntegrationTestSuite) Test_Skill_Lifecycle() {
	ctx := context.Background()

	sk := skill.Skill{Name: "Go", Level: 90, Category: skill.CategoryProgramming, Icon: "gopher"}
	s.Require().NoError(s.skillRepo.Create(ctx, sk))

	// Create on an existing name upserts rather than failing.
	sk.Level = 95
	s.Require().NoError(s.skillRepo.Create(ctx, sk))

	all, err := s.skillRepo.FetchAll(ctx)
	s.Require().NoError(err)

	var found *skill.Skill
	for i := range all {
		if all[i].Name == "Go" {
			found = &all[i]
		}
	}
	s.Require().NotNil(found)
	s.Assert().Equal(95, found.Level)

	renamed := skill.Skill{Name: "Golang", Level: 95, Category: skill.CategoryProgramming, Icon: "gopher"}
	s.Require().NoError(s.skillRepo.Update(ctx, "Go", renamed))

	err = s.skillRepo.Update(ctx, "Go", renamed)
	s.Require().Error(err, "old name no longer exists")
	s.Assert().True(apperror.IsNotFound(err))

	s.Require().NoError(s.skillRepo.Delete(ctx, "Golang"))
	s.Require().NoError(s.skillRepo.Delete(ctx, "Golang"), "delete is idempotent")
}

func (s *RepoIntegrationTestSuite) Test_Experience_Lifecycle() {
	ctx := context.Background()

	older := experience.Experience{
		ID:           uuid.New(),
		Title:        "Intern",
		Organization: "Acme",
		Period:       "2019 - 2020",
		Description:  []string{"Did intern things"},
		Type:         experience.TypeWork,
	}
	s.Require().NoError(s.experienceRepo.Create(ctx, older))

	newer := experience.Experience{
		ID:           uuid.New(),
		Title:        "Engineer",
		Organization: "Acme",
		Period:       "2020 - now",
		Description:  []string{"Shipped the data layer", "On-call rotation"},
		Type:         experience.TypeWork,
	}
	s.Require().NoError(s.experienceRepo.Create(ctx, newer))

	all, err := s.experienceRepo.FetchAll(ctx)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(all), 2)
	s.Assert().Equal(newer.ID, all[0].ID, "most recent first")
	s.Assert().Equal([]string{"Shipped the data layer", "On-call rotation"}, all[0].Description)

	newer.Title = "Senior Engineer"
	s.Require().NoError(s.experienceRepo.Update(ctx, newer.ID, newer))

	err = s.experienceRepo.Update(ctx, uuid.New(), newer)
	s.Require().Error(err)
	s.Assert().True(apperror.IsNotFound(err))

	s.Require().NoError(s.experienceRepo.Delete(ctx, older.ID))
	s.Require().NoError(s.experienceRepo.Delete(ctx, newer.ID))
}

func (s *RepoIntegrationTestSuite) Test_Project_Lifecycle() {
	ctx := context.Background()

	p := project.Project{
		ID:           uuid.New(),
		Title:        "Folio",
		Description:  "Portfolio data layer",
		Category:     project.CategoryProgramming,
		Technologies: []string{"Go", "Postgres"},
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	s.Require().NoError(s.projectRepo.Create(ctx, p))

	all, err := s.projectRepo.FetchAll(ctx)
	s.Require().NoError(err)

	var got *project.Project
	for i := range all {
		if all[i].ID == p.ID {
			got = &all[i]
		}
	}
	s.Require().NotNil(got)
	s.Assert().Equal([]string{"Go", "Postgres"}, got.Technologies)

	p.Title = "Folio v2"
	s.Require().NoError(s.projectRepo.Update(ctx, p.ID, p))

	all, err = s.projectRepo.FetchAll(ctx)
	s.Require().NoError(err)
	for i := range all {
		if all[i].ID == p.ID {
			s.Assert().Equal("Folio v2", all[i].Title)
			s.Assert().WithinDuration(p.CreatedAt, all[i].CreatedAt, time.Second, "edits keep the creation time")
		}
	}

	err = s.projectRepo.Update(ctx, uuid.New(), p)
	s.Require().Error(err)
	s.Assert().True(apperror.IsNotFound(err))

	s.Require().NoError(s.projectRepo.Delete(ctx, p.ID))
}
