package service

import (
	"context"

	"github.com/tgcs/experience-api/internal/modules/repo"
	"golang.org/x/sync/errgroup"
)

type ProgramService interface {
	// All returns every program keyed by program_id with its focuses
	// attached under "focuses".
	All(ctx context.Context) (map[int64]repo.Record, error)
}

type programService struct {
	r repo.ProgramRepo
}

func NewProgramService(r repo.ProgramRepo) ProgramService {
	return &programService{r: r}
}

func (s *programService) All(ctx context.Context) (map[int64]repo.Record, error) {
	var (
		programs map[int64]repo.Record
		focuses  map[int64][]repo.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		programs, err = s.r.Programs(gctx)
		return err
	})
	g.Go(func() (err error) {
		focuses, err = s.r.Focuses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for id, p := range programs {
		p["focuses"] = orEmpty(focuses[id])
	}
	return programs, nil
}
