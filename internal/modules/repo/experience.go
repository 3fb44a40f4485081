package repo

import "context"

// ExperienceFields are the base columns of an experience row, without the
// experience_id key.
var ExperienceFields = []string{
	"website_url",
	"entry_fee",
	"participant_count",
	"name",
	"origin_year",
	"purpose",
	"description",
	"required_items",
	"advice",
	"score_time",
	"score_difficulty",
	"score_benefit",
	"score_mgmt",
	"type",
	"virtual",
	"address",
	"prerequisite_description",
	"entry_description",
}

var (
	experienceColumns = "experience.experience_id, " + BuildColumns("experience", ExperienceFields)

	gradeFields  = []string{"experience_id", "grade"}
	gradeColumns = BuildColumns("experience_grade", gradeFields)

	categoryFields  = []string{"experience_id", "category"}
	categoryColumns = BuildColumns("experience_category", categoryFields)

	importantDateFields  = []string{"experience_id", "description"}
	importantDateColumns = BuildColumns("important_date", importantDateFields)

	experienceSponsorFields  = []string{"experience_id", "sponsor_id"}
	experienceSponsorColumns = BuildColumns("experience_sponsor", experienceSponsorFields)

	prerequisiteFields  = []string{"experience_id", "prerequisite_experience_id"}
	prerequisiteColumns = BuildColumns("experience_prerequisite", prerequisiteFields)
)

type ExperienceRepo interface {
	// List returns the base experience rows, experience_id included, in
	// store order.
	List(ctx context.Context) ([]Record, error)
	Grades(ctx context.Context) (map[int64][]Record, error)
	Categories(ctx context.Context) (map[int64][]Record, error)
	ImportantDates(ctx context.Context) (map[int64][]Record, error)
	// Sponsors returns experience_sponsor link rows grouped by experience.
	Sponsors(ctx context.Context) (map[int64][]Record, error)
	// Prerequisites returns experience_prerequisite link rows grouped by
	// experience.
	Prerequisites(ctx context.Context) (map[int64][]Record, error)
}

type experienceRepo struct{ q Querier }

func NewExperienceRepo(q Querier) ExperienceRepo {
	return &experienceRepo{q: q}
}

func (r *experienceRepo) List(ctx context.Context) ([]Record, error) {
	return r.q.Query(ctx, "SELECT "+experienceColumns+" FROM experience ORDER BY experience.experience_id")
}

func (r *experienceRepo) Grades(ctx context.Context) (map[int64][]Record, error) {
	return QueryGroupedMulti(ctx, r.q,
		"SELECT "+gradeColumns+" FROM experience_grade",
		"experience_id", gradeFields)
}

func (r *experienceRepo) Categories(ctx context.Context) (map[int64][]Record, error) {
	return QueryGroupedMulti(ctx, r.q,
		"SELECT "+categoryColumns+" FROM experience_category",
		"experience_id", categoryFields)
}

func (r *experienceRepo) ImportantDates(ctx context.Context) (map[int64][]Record, error) {
	return QueryGroupedMulti(ctx, r.q,
		"SELECT "+importantDateColumns+" FROM important_date",
		"experience_id", importantDateFields)
}

func (r *experienceRepo) Sponsors(ctx context.Context) (map[int64][]Record, error) {
	return QueryGroupedMulti(ctx, r.q,
		"SELECT "+experienceSponsorColumns+" FROM experience_sponsor",
		"experience_id", experienceSponsorFields)
}

func (r *experienceRepo) Prerequisites(ctx context.Context) (map[int64][]Record, error) {
	return QueryGroupedMulti(ctx, r.q,
		"SELECT "+prerequisiteColumns+" FROM experience_prerequisite",
		"experience_id", prerequisiteFields)
}
