package repo

import "context"

var (
	competitionFields  = []string{"competition_id", "judges_description", "judging_criteria"}
	competitionColumns = BuildColumns("competition", competitionFields)

	awardFields  = []string{"competition_id", "type", "description"}
	awardColumns = BuildColumns("award", awardFields)
)

type CompetitionRepo interface {
	// Competitions returns one record per competition_id.
	Competitions(ctx context.Context) (map[int64]Record, error)
	// Awards returns every award grouped by competition_id.
	Awards(ctx context.Context) (map[int64][]Record, error)
}

type competitionRepo struct{ q Querier }

func NewCompetitionRepo(q Querier) CompetitionRepo {
	return &competitionRepo{q: q}
}

func (r *competitionRepo) Competitions(ctx context.Context) (map[int64]Record, error) {
	return QueryGrouped(ctx, r.q,
		"SELECT "+competitionColumns+" FROM competition",
		"competition_id", competitionFields)
}

func (r *competitionRepo) Awards(ctx context.Context) (map[int64][]Record, error) {
	return QueryGroupedMulti(ctx, r.q,
		"SELECT "+awardColumns+" FROM award",
		"competition_id", awardFields)
}
