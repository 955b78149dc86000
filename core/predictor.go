package core

import (
	"context"
	"errors"
)

// ErrScorerUnavailable is reported when the external prediction scorer
// cannot be reached, times out or responds with an error.
var ErrScorerUnavailable = errors.New("prediction service unavailable")

// Profile is an already-validated member profile submitted for scoring.
// Values are passed through to the scorer unchanged.
type Profile struct {
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
}

func (p *Profile) Validate() error {
	p.Sex = CleanString(p.Sex)
	p.Track = CleanString(p.Track)
	p.Cell = CleanString(p.Cell)
	return Validate.Struct(p)
}

// PredictionService is any service that can recommend a formation for a profile.
type PredictionService interface {
	// Predict returns the recommended formation name for the given profile.
	// It makes a single best-effort call; no retries are attempted.
	Predict(ctx context.Context, profile Profile) (string, error)
}
