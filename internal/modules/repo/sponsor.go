package repo

import "context"

var (
	sponsorFields  = []string{"sponsor_id", "name", "address", "email", "phone"}
	sponsorColumns = BuildColumns("sponsor", sponsorFields)
)

type SponsorRepo interface {
	List(ctx context.Context) ([]Record, error)
}

type sponsorRepo struct{ q Querier }

func NewSponsorRepo(q Querier) SponsorRepo {
	return &sponsorRepo{q: q}
}

func (r *sponsorRepo) List(ctx context.Context) ([]Record, error) {
	rows, err := r.q.Query(ctx, "SELECT "+sponsorColumns+" FROM sponsor ORDER BY sponsor.sponsor_id")
	if err != nil {
		return nil, err
	}

	sponsors := make([]Record, 0, len(rows))
	for _, row := range rows {
		sponsors = append(sponsors, shape(row, "", sponsorFields))
	}
	return sponsors, nil
}
