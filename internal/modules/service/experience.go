package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tgcs/experience-api/internal/modules/model"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"github.com/tgcs/experience-api/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// SubtypeKind tags which subtype record an experience carries.
type SubtypeKind int

const (
	SubtypeNone SubtypeKind = iota
	SubtypeCompetition
	SubtypeProgram
)

func (k SubtypeKind) String() string {
	switch k {
	case SubtypeCompetition:
		return "competition"
	case SubtypeProgram:
		return "program"
	default:
		return "none"
	}
}

// Subtype is the competition or program aggregate matched to an experience.
// Fields is nil when Kind is SubtypeNone.
type Subtype struct {
	Kind   SubtypeKind
	Fields repo.Record
}

// Experience is one aggregated experience. Base holds the experience row
// and its attached relations; Subtype is merged over it when the experience
// is serialised.
type Experience struct {
	ID      int64
	Base    repo.Record
	Subtype Subtype
}

// Flatten returns the single record clients see, subtype keys overriding
// base keys.
func (e Experience) Flatten() repo.Record {
	out := make(repo.Record, len(e.Base)+len(e.Subtype.Fields))
	for k, v := range e.Base {
		out[k] = v
	}
	for k, v := range e.Subtype.Fields {
		out[k] = v
	}
	return out
}

func (e Experience) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(e.Flatten())
}

// Type returns the experience type column as a string.
func (e Experience) Type() model.ExperienceType {
	s, _ := e.Base["type"].(string)
	return model.ExperienceType(s)
}

type ExperienceService interface {
	// List returns every experience in store order.
	List(ctx context.Context) ([]Experience, error)
	// Get returns the experience whose id equals id, or ErrExperienceNotFound.
	Get(ctx context.Context, id int64) (*Experience, error)
}

type experienceService struct {
	r            repo.ExperienceRepo
	competitions CompetitionService
	programs     ProgramService
}

func NewExperienceService(r repo.ExperienceRepo, competitions CompetitionService, programs ProgramService) ExperienceService {
	return &experienceService{
		r:            r,
		competitions: competitions,
		programs:     programs,
	}
}

func (s *experienceService) List(ctx context.Context) ([]Experience, error) {
	defer telemetry.ObserveAggregation("experience", time.Now())

	var (
		rows                            []repo.Record
		grades, categories, dates       map[int64][]repo.Record
		sponsorLinks, prerequisiteLinks map[int64][]repo.Record
		competitionsByID, programsByID  map[int64]repo.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = s.r.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		grades, err = s.r.Grades(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.r.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		dates, err = s.r.ImportantDates(gctx)
		return err
	})
	g.Go(func() (err error) {
		sponsorLinks, err = s.r.Sponsors(gctx)
		return err
	})
	g.Go(func() (err error) {
		prerequisiteLinks, err = s.r.Prerequisites(gctx)
		return err
	})
	g.Go(func() (err error) {
		competitionsByID, err = s.competitions.All(gctx)
		return err
	})
	g.Go(func() (err error) {
		programsByID, err = s.programs.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Experience, 0, len(rows))
	for _, row := range rows {
		id, err := repo.KeyOf(row["experience_id"])
		if err != nil {
			return nil, fmt.Errorf("experience_id: %w", err)
		}

		base := make(repo.Record, len(repo.ExperienceFields)+6)
		base["experience_id"] = row["experience_id"]
		for _, f := range repo.ExperienceFields {
			base[f] = row[f]
		}
		base["grades"] = orEmpty(grades[id])
		base["categories"] = orEmpty(categories[id])
		base["important_dates"] = orEmpty(dates[id])
		base["sponsors"] = linkIDs(sponsorLinks[id], "sponsor_id")
		base["prerequisites"] = linkIDs(prerequisiteLinks[id], "prerequisite_experience_id")

		e := Experience{ID: id, Base: base}
		switch e.Type() {
		case model.TypeCompetition:
			if c, ok := competitionsByID[id]; ok {
				e.Subtype = Subtype{Kind: SubtypeCompetition, Fields: c}
			}
		case model.TypeProgram:
			if p, ok := programsByID[id]; ok {
				e.Subtype = Subtype{Kind: SubtypeProgram, Fields: p}
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// linkIDs flattens link records to their ids, dropping missing and zero ids.
func linkIDs(links []repo.Record, field string) []int64 {
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		id, err := repo.KeyOf(l[field])
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (s *experienceService) Get(ctx context.Context, id int64) (*Experience, error) {
	experiences, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range experiences {
		if experiences[i].ID == id {
			return &experiences[i], nil
		}
	}
	return nil, ErrExperienceNotFound
}
