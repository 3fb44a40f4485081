package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tgcs/experience-api/internal/infra/httpclient"
	"github.com/tgcs/experience-api/internal/modules/model"
	"github.com/tgcs/experience-api/internal/modules/repo"
)

// MockCompetitionRepo is a mock implementation of CompetitionRepo
type MockCompetitionRepo struct {
	mock.Mock
}

func (m *MockCompetitionRepo) Competitions(ctx context.Context) (map[int64]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]repo.Record), args.Error(1)
}

func (m *MockCompetitionRepo) Awards(ctx context.Context) (map[int64][]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]repo.Record), args.Error(1)
}

// MockProgramRepo is a mock implementation of ProgramRepo
type MockProgramRepo struct {
	mock.Mock
}

func (m *MockProgramRepo) Programs(ctx context.Context) (map[int64]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]repo.Record), args.Error(1)
}

func (m *MockProgramRepo) Focuses(ctx context.Context) (map[int64][]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]repo.Record), args.Error(1)
}

// MockExperienceRepo is a mock implementation of ExperienceRepo
type MockExperienceRepo struct {
	mock.Mock
}

func (m *MockExperienceRepo) List(ctx context.Context) ([]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.Record), args.Error(1)
}

func (m *MockExperienceRepo) Grades(ctx context.Context) (map[int64][]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]repo.Record), args.Error(1)
}

func (m *MockExperienceRepo) Categories(ctx context.Context) (map[int64][]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]repo.Record), args.Error(1)
}

func (m *MockExperienceRepo) ImportantDates(ctx context.Context) (map[int64][]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]repo.Record), args.Error(1)
}

func (m *MockExperienceRepo) Sponsors(ctx context.Context) (map[int64][]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]repo.Record), args.Error(1)
}

func (m *MockExperienceRepo) Prerequisites(ctx context.Context) (map[int64][]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]repo.Record), args.Error(1)
}

// MockSponsorRepo is a mock implementation of SponsorRepo
type MockSponsorRepo struct {
	mock.Mock
}

func (m *MockSponsorRepo) List(ctx context.Context) ([]repo.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.Record), args.Error(1)
}

// MockFeedbackRepo is a mock implementation of FeedbackRepo
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) IDsByExperience(ctx context.Context) (map[int64][]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]int64), args.Error(1)
}

func (m *MockFeedbackRepo) Get(ctx context.Context, feedbackID int64) (repo.Record, error) {
	args := m.Called(ctx, feedbackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repo.Record), args.Error(1)
}

// MockTableRepo is a mock implementation of TableRepo
type MockTableRepo struct {
	mock.Mock
}

func (m *MockTableRepo) Insert(ctx context.Context, table string, data map[string]any) (int64, error) {
	args := m.Called(ctx, table, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTableRepo) Update(ctx context.Context, table string, rowID int64, data map[string]any) error {
	args := m.Called(ctx, table, rowID, data)
	return args.Error(0)
}

func (m *MockTableRepo) Remove(ctx context.Context, table, keyColumn string, rowID int64) error {
	args := m.Called(ctx, table, keyColumn, rowID)
	return args.Error(0)
}

// MockLoginRepo is a mock implementation of LoginRepo
type MockLoginRepo struct {
	mock.Mock
}

func (m *MockLoginRepo) Get(ctx context.Context, email string) (*model.Login, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Login), args.Error(1)
}

func (m *MockLoginRepo) Upsert(ctx context.Context, l *model.Login) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLoginRepo) UpdateExpiration(ctx context.Context, email string, expiration int64) error {
	args := m.Called(ctx, email, expiration)
	return args.Error(0)
}

func (m *MockLoginRepo) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockLoginRepo) IsAdmin(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockScraperRepo is a mock implementation of ScraperRepo
type MockScraperRepo struct {
	mock.Mock
}

func (m *MockScraperRepo) Create(ctx context.Context, s *model.Scraper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScraperRepo) Get(ctx context.Context, scraperID int64) (*model.Scraper, error) {
	args := m.Called(ctx, scraperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Scraper), args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) TTL() time.Duration { return time.Hour }

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	args := m.Called(ctx, exchangeName, routingKey, body)
	return args.Error(0)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, credential string) (*GoogleClaims, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleClaims), args.Error(1)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Get(ctx context.Context, url string) (*httpclient.Page, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*httpclient.Page), args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) PutSnapshot(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}
