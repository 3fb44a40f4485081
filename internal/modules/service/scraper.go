package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tgcs/experience-api/internal/infra/blob"
	"github.com/tgcs/experience-api/internal/infra/httpclient"
	"github.com/tgcs/experience-api/internal/modules/model"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"github.com/tgcs/experience-api/internal/pkg/utils/mime"
	elempath "github.com/tgcs/experience-api/internal/pkg/utils/path"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

type PageFetcher interface {
	Get(ctx context.Context, url string) (*httpclient.Page, error)
}

type SnapshotArchive interface {
	PutSnapshot(ctx context.Context, key string, body []byte, contentType string) error
}

type ScrapeInput struct {
	URL string
	// Targets maps a field name to text expected on the page.
	Targets map[string]string
	// Save stores the scraper and its paths.
	Save bool
}

type ScrapeOutput struct {
	ScraperID   int64             `json:"scraper_id,omitempty"`
	URL         string            `json:"url"`
	Paths       map[string]string `json:"paths"`
	Missing     []string          `json:"missing"`
	SnapshotKey string            `json:"snapshot_key,omitempty"`
}

type RunOutput struct {
	ScraperID int64             `json:"scraper_id"`
	URL       string            `json:"url"`
	Values    map[string]string `json:"values"`
	Missing   []string          `json:"missing"`
}

type ScraperService interface {
	// Scrape fetches a page and finds the element path of every target text.
	Scrape(ctx context.Context, in ScrapeInput) (*ScrapeOutput, error)
	// Run refetches a saved scraper's page and reads the text at its paths.
	Run(ctx context.Context, scraperID int64) (*RunOutput, error)
}

type scraperService struct {
	r       repo.ScraperRepo
	fetcher PageFetcher
	archive SnapshotArchive
	log     *zap.Logger
	now     func() time.Time
}

// NewScraperService builds the scraper. archive may be nil to skip snapshots.
func NewScraperService(r repo.ScraperRepo, fetcher PageFetcher, archive SnapshotArchive, log *zap.Logger) ScraperService {
	return &scraperService{
		r:       r,
		fetcher: fetcher,
		archive: archive,
		log:     log,
		now:     time.Now,
	}
}

func (s *scraperService) fetchDocument(ctx context.Context, url string) (*httpclient.Page, *html.Node, string, error) {
	page, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	mimeType := mime.DetectPageType(page.Body, page.ContentType, url)
	if !mime.IsHTML(mimeType) {
		return nil, nil, "", fmt.Errorf("%w: %s", ErrNotHTML, mimeType)
	}
	doc, err := html.Parse(bytes.NewReader(page.Body))
	if err != nil {
		return nil, nil, "", fmt.Errorf("parse html: %w", err)
	}
	return page, doc, mimeType, nil
}

func sortedFields(targets map[string]string) []string {
	fields := make([]string, 0, len(targets))
	for f := range targets {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (s *scraperService) Scrape(ctx context.Context, in ScrapeInput) (*ScrapeOutput, error) {
	page, doc, mimeType, err := s.fetchDocument(ctx, in.URL)
	if err != nil {
		return nil, err
	}

	out := &ScrapeOutput{
		URL:     in.URL,
		Paths:   make(map[string]string, len(in.Targets)),
		Missing: []string{},
	}
	for _, field := range sortedFields(in.Targets) {
		if p, ok := elempath.Find(doc, in.Targets[field]); ok {
			out.Paths[field] = p
		} else {
			out.Missing = append(out.Missing, field)
		}
	}

	if !in.Save {
		return out, nil
	}

	sc := &model.Scraper{URL: in.URL}
	if s.archive != nil {
		key := blob.SnapshotKey(s.now())
		if err := s.archive.PutSnapshot(ctx, key, page.Body, mimeType); err != nil {
			s.log.Warn("snapshot upload failed", zap.String("url", in.URL), zap.Error(err))
		} else {
			sc.SnapshotKey = &key
			out.SnapshotKey = key
		}
	}
	for _, field := range sortedFields(out.Paths) {
		sc.Paths = append(sc.Paths, model.ScraperPath{Field: field, Path: out.Paths[field]})
	}
	if err := s.r.Create(ctx, sc); err != nil {
		return nil, err
	}
	out.ScraperID = sc.ScraperID
	s.log.Info("scraper saved", zap.Int64("scraper_id", sc.ScraperID), zap.Int("paths", len(sc.Paths)))
	return out, nil
}

func (s *scraperService) Run(ctx context.Context, scraperID int64) (*RunOutput, error) {
	sc, err := s.r.Get(ctx, scraperID)
	if err != nil {
		return nil, err
	}
	_, doc, _, err := s.fetchDocument(ctx, sc.URL)
	if err != nil {
		return nil, err
	}

	out := &RunOutput{
		ScraperID: sc.ScraperID,
		URL:       sc.URL,
		Values:    make(map[string]string, len(sc.Paths)),
		Missing:   []string{},
	}
	for _, p := range sc.Paths {
		n, err := elempath.Resolve(doc, p.Path)
		if err != nil {
			if !errors.Is(err, elempath.ErrNoMatch) {
				s.log.Warn("stored scraper path is invalid", zap.Int64("scraper_id", sc.ScraperID), zap.String("path", p.Path), zap.Error(err))
			}
			out.Missing = append(out.Missing, p.Field)
			continue
		}
		out.Values[p.Field] = elempath.Text(n)
	}
	return out, nil
}
