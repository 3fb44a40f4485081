package service

import (
	"context"

	"github.com/tgcs/experience-api/internal/modules/repo"
)

type SponsorService interface {
	List(ctx context.Context) ([]repo.Record, error)
}

type sponsorService struct {
	r repo.SponsorRepo
}

func NewSponsorService(r repo.SponsorRepo) SponsorService {
	return &sponsorService{r: r}
}

func (s *sponsorService) List(ctx context.Context) ([]repo.Record, error) {
	return s.r.List(ctx)
}
