package repo

import "context"

var (
	programFields  = []string{"program_id", "type", "monthly_fee", "time_commitment"}
	programColumns = BuildColumns("program", programFields)

	programFocusFields  = []string{"program_id", "focus"}
	programFocusColumns = BuildColumns("program_focus", programFocusFields)
)

type ProgramRepo interface {
	Programs(ctx context.Context) (map[int64]Record, error)
	Focuses(ctx context.Context) (map[int64][]Record, error)
}

type programRepo struct{ q Querier }

func NewProgramRepo(q Querier) ProgramRepo {
	return &programRepo{q: q}
}

func (r *programRepo) Programs(ctx context.Context) (map[int64]Record, error) {
	return QueryGrouped(ctx, r.q,
		"SELECT "+programColumns+" FROM program",
		"program_id", programFields)
}

func (r *programRepo) Focuses(ctx context.Context) (map[int64][]Record, error) {
	return QueryGroupedMulti(ctx, r.q,
		"SELECT "+programFocusColumns+" FROM program_focus",
		"program_id", programFocusFields)
}
