package service

import (
	"context"

	"github.com/tgcs/experience-api/internal/modules/repo"
	"golang.org/x/sync/errgroup"
)

type CompetitionService interface {
	// All returns every competition keyed by competition_id, each with its
	// awards attached under "awards".
	All(ctx context.Context) (map[int64]repo.Record, error)
}

type competitionService struct {
	r repo.CompetitionRepo
}

func NewCompetitionService(r repo.CompetitionRepo) CompetitionService {
	return &competitionService{r: r}
}

func (s *competitionService) All(ctx context.Context) (map[int64]repo.Record, error) {
	var (
		competitions map[int64]repo.Record
		awards       map[int64][]repo.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		competitions, err = s.r.Competitions(gctx)
		return err
	})
	g.Go(func() (err error) {
		awards, err = s.r.Awards(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Awards of competitions missing from the base result are dropped.
	for id, c := range competitions {
		c["awards"] = orEmpty(awards[id])
	}
	return competitions, nil
}

func orEmpty(records []repo.Record) []repo.Record {
	if records == nil {
		return []repo.Record{}
	}
	return records
}
