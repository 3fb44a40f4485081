package model

// ExperienceType discriminates which subtype table, if any, belongs to an
// experience.
type ExperienceType string

const (
	TypeCompetition     ExperienceType = "COMPETITION"
	TypeProgram         ExperienceType = "PROGRAM"
	TypeExtracurricular ExperienceType = "EXTRACURRICULAR"
)

type Experience struct {
	ExperienceID            int64    `gorm:"column:experience_id;primaryKey;autoIncrement" json:"experience_id"`
	WebsiteURL              *string  `gorm:"column:website_url;size:2048" json:"website_url"`
	EntryFee                *float64 `gorm:"column:entry_fee" json:"entry_fee"`
	ParticipantCount        *int     `gorm:"column:participant_count" json:"participant_count"`
	Name                    string   `gorm:"column:name;size:255;not null" json:"name"`
	OriginYear              *int     `gorm:"column:origin_year" json:"origin_year"`
	Purpose                 *string  `gorm:"column:purpose;type:text" json:"purpose"`
	Description             *string  `gorm:"column:description;type:text" json:"description"`
	RequiredItems           *string  `gorm:"column:required_items;type:text" json:"required_items"`
	Advice                  *string  `gorm:"column:advice;type:text" json:"advice"`
	ScoreTime               *int     `gorm:"column:score_time" json:"score_time"`
	ScoreDifficulty         *int     `gorm:"column:score_difficulty" json:"score_difficulty"`
	ScoreBenefit            *int     `gorm:"column:score_benefit" json:"score_benefit"`
	ScoreMgmt               *int     `gorm:"column:score_mgmt" json:"score_mgmt"`
	Type                    string   `gorm:"column:type;size:32;not null;default:EXTRACURRICULAR" json:"type"`
	Virtual                 bool     `gorm:"column:virtual;not null;default:false" json:"virtual"`
	Address                 *string  `gorm:"column:address;size:512" json:"address"`
	PrerequisiteDescription *string  `gorm:"column:prerequisite_description;type:text" json:"prerequisite_description"`
	EntryDescription        *string  `gorm:"column:entry_description;type:text" json:"entry_description"`
}

func (Experience) TableName() string { return "experience" }

type ExperienceGrade struct {
	ExperienceID int64  `gorm:"column:experience_id;primaryKey;autoIncrement:false" json:"experience_id"`
	Grade        string `gorm:"column:grade;primaryKey;size:32" json:"grade"`

	Experience *Experience `gorm:"foreignKey:ExperienceID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ExperienceGrade) TableName() string { return "experience_grade" }

type ExperienceCategory struct {
	ExperienceID int64  `gorm:"column:experience_id;primaryKey;autoIncrement:false" json:"experience_id"`
	Category     string `gorm:"column:category;primaryKey;size:128" json:"category"`

	Experience *Experience `gorm:"foreignKey:ExperienceID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ExperienceCategory) TableName() string { return "experience_category" }

type ImportantDate struct {
	ImportantDateID int64   `gorm:"column:important_date_id;primaryKey;autoIncrement" json:"important_date_id"`
	ExperienceID    int64   `gorm:"column:experience_id;not null;index" json:"experience_id"`
	Description     *string `gorm:"column:description;type:text" json:"description"`

	Experience *Experience `gorm:"foreignKey:ExperienceID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ImportantDate) TableName() string { return "important_date" }

type ExperienceSponsor struct {
	ExperienceID int64 `gorm:"column:experience_id;primaryKey;autoIncrement:false" json:"experience_id"`
	SponsorID    int64 `gorm:"column:sponsor_id;primaryKey;autoIncrement:false" json:"sponsor_id"`

	Experience *Experience `gorm:"foreignKey:ExperienceID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Sponsor    *Sponsor    `gorm:"foreignKey:SponsorID;references:SponsorID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ExperienceSponsor) TableName() string { return "experience_sponsor" }

type ExperiencePrerequisite struct {
	ExperienceID             int64 `gorm:"column:experience_id;primaryKey;autoIncrement:false" json:"experience_id"`
	PrerequisiteExperienceID int64 `gorm:"column:prerequisite_experience_id;primaryKey;autoIncrement:false" json:"prerequisite_experience_id"`

	Experience   *Experience `gorm:"foreignKey:ExperienceID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Prerequisite *Experience `gorm:"foreignKey:PrerequisiteExperienceID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ExperiencePrerequisite) TableName() string { return "experience_prerequisite" }

// Competition shares its id with the owning experience.
type Competition struct {
	CompetitionID     int64   `gorm:"column:competition_id;primaryKey;autoIncrement:false" json:"competition_id"`
	JudgesDescription *string `gorm:"column:judges_description;type:text" json:"judges_description"`
	JudgingCriteria   *string `gorm:"column:judging_criteria;type:text" json:"judging_criteria"`

	Experience *Experience `gorm:"foreignKey:CompetitionID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Competition) TableName() string { return "competition" }

type Award struct {
	AwardID       int64   `gorm:"column:award_id;primaryKey;autoIncrement" json:"award_id"`
	CompetitionID int64   `gorm:"column:competition_id;not null;index" json:"competition_id"`
	Type          *string `gorm:"column:type;size:64" json:"type"`
	Description   *string `gorm:"column:description;type:text" json:"description"`

	Competition *Competition `gorm:"foreignKey:CompetitionID;references:CompetitionID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Award) TableName() string { return "award" }

// Program shares its id with the owning experience.
type Program struct {
	ProgramID      int64    `gorm:"column:program_id;primaryKey;autoIncrement:false" json:"program_id"`
	Type           *string  `gorm:"column:type;size:64" json:"type"`
	MonthlyFee     *float64 `gorm:"column:monthly_fee" json:"monthly_fee"`
	TimeCommitment *string  `gorm:"column:time_commitment;size:255" json:"time_commitment"`

	Experience *Experience `gorm:"foreignKey:ProgramID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Program) TableName() string { return "program" }

type ProgramFocus struct {
	ProgramID int64  `gorm:"column:program_id;primaryKey;autoIncrement:false" json:"program_id"`
	Focus     string `gorm:"column:focus;primaryKey;size:128" json:"focus"`

	Program *Program `gorm:"foreignKey:ProgramID;references:ProgramID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProgramFocus) TableName() string { return "program_focus" }

type Sponsor struct {
	SponsorID int64   `gorm:"column:sponsor_id;primaryKey;autoIncrement" json:"sponsor_id"`
	Name      string  `gorm:"column:name;size:255;not null" json:"name"`
	Address   *string `gorm:"column:address;size:512" json:"address"`
	Email     *string `gorm:"column:email;size:255" json:"email"`
	Phone     *string `gorm:"column:phone;size:64" json:"phone"`
}

func (Sponsor) TableName() string { return "sponsor" }

type Feedback struct {
	FeedbackID   int64  `gorm:"column:feedback_id;primaryKey;autoIncrement" json:"feedback_id"`
	ExperienceID int64  `gorm:"column:experience_id;not null;index" json:"experience_id"`
	Feedback     string `gorm:"column:feedback;type:text;not null" json:"feedback"`

	Experience *Experience `gorm:"foreignKey:ExperienceID;references:ExperienceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Feedback) TableName() string { return "feedback" }

// All lists every catalogue model in creation order for AutoMigrate.
func All() []any {
	return []any{
		&Experience{},
		&Sponsor{},
		&ExperienceGrade{},
		&ExperienceCategory{},
		&ImportantDate{},
		&ExperienceSponsor{},
		&ExperiencePrerequisite{},
		&Competition{},
		&Award{},
		&Program{},
		&ProgramFocus{},
		&Feedback{},
		&Login{},
		&Admin{},
		&Scraper{},
		&ScraperPath{},
	}
}
