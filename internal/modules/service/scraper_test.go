package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tgcs/experience-api/internal/infra/httpclient"
	"github.com/tgcs/experience-api/internal/modules/model"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"go.uber.org/zap"
)

const (
	testPageURL = "https://example.com/robotics"
	testPage    = `<html><head><title>Robotics</title></head><body>` +
		`<div><h1>Robotics Cup</h1></div>` +
		`<div><p>Deadline</p><p>March 1</p></div>` +
		`</body></html>`
)

func htmlPage() *httpclient.Page {
	return &httpclient.Page{
		URL:         testPageURL,
		StatusCode:  200,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(testPage),
	}
}

func newTestScraper(r *MockScraperRepo, f *MockFetcher, a SnapshotArchive) *scraperService {
	s := NewScraperService(r, f, a, zap.NewNop()).(*scraperService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestScraperService_Scrape(t *testing.T) {
	ctx := context.Background()
	targets := map[string]string{
		"title":    "robotics   cup",
		"deadline": "March 1",
		"prize":    "Scholarship",
	}

	t.Run("finds paths without saving", func(t *testing.T) {
		fetcher := &MockFetcher{}
		fetcher.On("Get", ctx, testPageURL).Return(htmlPage(), nil)
		r := &MockScraperRepo{}

		out, err := newTestScraper(r, fetcher, nil).Scrape(ctx, ScrapeInput{URL: testPageURL, Targets: targets})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"title":    "html>body>div[1]>h1",
			"deadline": "html>body>div[2]>p[2]",
		}, out.Paths)
		assert.Equal(t, []string{"prize"}, out.Missing)
		assert.Zero(t, out.ScraperID)
		r.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("saves scraper and snapshot", func(t *testing.T) {
		fetcher := &MockFetcher{}
		fetcher.On("Get", ctx, testPageURL).Return(htmlPage(), nil)
		archive := &MockArchive{}
		archive.On("PutSnapshot", ctx, mock.AnythingOfType("string"), []byte(testPage), mock.Anything).Return(nil)

		r := &MockScraperRepo{}
		var saved *model.Scraper
		r.On("Create", ctx, mock.AnythingOfType("*model.Scraper")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*model.Scraper)
				saved.ScraperID = 7
			}).
			Return(nil)

		out, err := newTestScraper(r, fetcher, archive).Scrape(ctx, ScrapeInput{URL: testPageURL, Targets: targets, Save: true})
		require.NoError(t, err)

		assert.Equal(t, int64(7), out.ScraperID)
		assert.True(t, strings.HasPrefix(out.SnapshotKey, "snapshots/2024/05/01/"), out.SnapshotKey)
		require.NotNil(t, saved.SnapshotKey)
		assert.Equal(t, out.SnapshotKey, *saved.SnapshotKey)
		assert.Equal(t, []model.ScraperPath{
			{Field: "deadline", Path: "html>body>div[2]>p[2]"},
			{Field: "title", Path: "html>body>div[1]>h1"},
		}, saved.Paths)
		archive.AssertExpectations(t)
		r.AssertExpectations(t)
	})

	t.Run("snapshot failure still saves", func(t *testing.T) {
		fetcher := &MockFetcher{}
		fetcher.On("Get", ctx, testPageURL).Return(htmlPage(), nil)
		archive := &MockArchive{}
		archive.On("PutSnapshot", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))
		r := &MockScraperRepo{}
		r.On("Create", ctx, mock.MatchedBy(func(s *model.Scraper) bool { return s.SnapshotKey == nil })).Return(nil)

		out, err := newTestScraper(r, fetcher, archive).Scrape(ctx, ScrapeInput{URL: testPageURL, Targets: targets, Save: true})
		require.NoError(t, err)
		assert.Empty(t, out.SnapshotKey)
		r.AssertExpectations(t)
	})

	t.Run("non html page", func(t *testing.T) {
		fetcher := &MockFetcher{}
		fetcher.On("Get", ctx, testPageURL).Return(&httpclient.Page{
			URL:         testPageURL,
			StatusCode:  200,
			ContentType: "application/json",
			Body:        []byte(`{"name":"Robotics Cup"}`),
		}, nil)

		_, err := newTestScraper(&MockScraperRepo{}, fetcher, nil).Scrape(ctx, ScrapeInput{URL: testPageURL, Targets: targets})
		assert.ErrorIs(t, err, ErrNotHTML)
	})

	t.Run("fetch failure", func(t *testing.T) {
		fetcher := &MockFetcher{}
		fetcher.On("Get", ctx, testPageURL).Return(nil, errors.New("status 503"))

		_, err := newTestScraper(&MockScraperRepo{}, fetcher, nil).Scrape(ctx, ScrapeInput{URL: testPageURL, Targets: targets})
		assert.ErrorIs(t, err, ErrFetchFailed)
	})
}

func TestScraperService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("reads saved paths", func(t *testing.T) {
		r := &MockScraperRepo{}
		r.On("Get", ctx, int64(7)).Return(&model.Scraper{
			ScraperID: 7,
			URL:       testPageURL,
			Paths: []model.ScraperPath{
				{Field: "title", Path: "html>body>div[1]>h1"},
				{Field: "deadline", Path: "html>body>div[2]>p[2]"},
				{Field: "table", Path: "html>body>table"},
				{Field: "broken", Path: "body>>"},
			},
		}, nil)
		fetcher := &MockFetcher{}
		fetcher.On("Get", ctx, testPageURL).Return(htmlPage(), nil)

		out, err := newTestScraper(r, fetcher, nil).Run(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), out.ScraperID)
		assert.Equal(t, map[string]string{"title": "Robotics Cup", "deadline": "March 1"}, out.Values)
		assert.Equal(t, []string{"table", "broken"}, out.Missing)
	})

	t.Run("unknown scraper", func(t *testing.T) {
		r := &MockScraperRepo{}
		r.On("Get", ctx, int64(9)).Return(nil, repo.ErrNotFound)

		_, err := newTestScraper(r, &MockFetcher{}, nil).Run(ctx, 9)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}
