package member

import (
	"github.com/tchamgoue/memboard/core"
)

// Member is one tracked individual with a fixed profile and a variable set
// of formation enrollments held in the encoded Formations field.
type Member struct {
	ID                        int     `json:"id"`
	Age                       int     `json:"age"`
	Sex                       string  `json:"sex"`
	HighSchoolAverage         float64 `json:"highSchoolAverage"`
	Track                     string  `json:"track"`
	OtherClubsCount           int     `json:"otherClubsCount"`
	ProjectsCompleted         int     `json:"projectsCompleted"`
	BureauEvaluation          int     `json:"bureauEvaluation"`
	SoftSkillsScore           float64 `json:"softSkillsScore"`
	InterviewScore            float64 `json:"interviewScore"`
	EngagementIndex           float64 `json:"engagementIndex"`
	HasProfessionalExperience bool    `json:"hasProfessionalExperience"`
	Cell                      string  `json:"cell"`
	Formations                string  `json:"formations"`
}

// FormationList decodes the member's enrolled formation names.
func (m Member) FormationList() []string {
	return DecodeFormations(m.Formations)
}

// HasFormation reports whether the member already holds the (trimmed) formation name.
func (m Member) HasFormation(name string) bool {
	name = core.CleanString(name)
	for _, f := range m.FormationList() {
		if f == name {
			return true
		}
	}
	return false
}

// NewMember contains information needed to create a new Member.
// Formations carries the source's already-encoded text verbatim.
type NewMember struct {
	Age                       int     `json:"age" validate:"gte=0"`
	Sex                       string  `json:"sex" validate:"required,oneof=Homme Femme"`
	HighSchoolAverage         float64 `json:"highSchoolAverage"`
	Track                     string  `json:"track"`
	OtherClubsCount           int     `json:"otherClubsCount"`
	ProjectsCompleted         int     `json:"projectsCompleted"`
	BureauEvaluation          int     `json:"bureauEvaluation"`
	SoftSkillsScore           float64 `json:"softSkillsScore"`
	InterviewScore            float64 `json:"interviewScore"`
	EngagementIndex           float64 `json:"engagementIndex"`
	HasProfessionalExperience bool    `json:"hasProfessionalExperience"`
	Cell                      string  `json:"cell"`
	Formations                string  `json:"formations"`
}

func (nm *NewMember) Validate() error {
	nm.Sex = core.CleanString(nm.Sex)
	nm.Track = core.CleanString(nm.Track)
	nm.Cell = core.CleanString(nm.Cell)
	nm.Formations = core.CleanString(nm.Formations)
	return core.Validate.Struct(nm)
}

type (
	// CellDistribution is one group of the members-per-cell aggregate.
	// Field names mirror the grouping key as exposed to the dashboard.
	CellDistribution struct {
		Cell  string                `json:"cellule"`
		Count CellDistributionCount `json:"_count"`
	}

	CellDistributionCount struct {
		Cell int `json:"cellule"`
	}
)
