package repo

import (
	"context"
	"errors"

	"github.com/tgcs/experience-api/internal/modules/model"
	"gorm.io/gorm"
)

type ScraperRepo interface {
	// Create stores the scraper together with its paths in one transaction.
	Create(ctx context.Context, s *model.Scraper) error
	Get(ctx context.Context, scraperID int64) (*model.Scraper, error)
}

type scraperRepo struct{ db *gorm.DB }

func NewScraperRepo(db *gorm.DB) ScraperRepo {
	return &scraperRepo{db: db}
}

func (r *scraperRepo) Create(ctx context.Context, s *model.Scraper) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paths := s.Paths
		s.Paths = nil
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		for i := range paths {
			paths[i].ScraperID = s.ScraperID
		}
		if len(paths) > 0 {
			if err := tx.Create(&paths).Error; err != nil {
				return err
			}
		}
		s.Paths = paths
		return nil
	})
}

func (r *scraperRepo) Get(ctx context.Context, scraperID int64) (*model.Scraper, error) {
	var s model.Scraper
	err := r.db.WithContext(ctx).
		Preload("Paths").
		Where("scraper_id = ?", scraperID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
