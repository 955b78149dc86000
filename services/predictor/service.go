// Package predictorsvc calls the external formation scorer over HTTP.
package predictorsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/tchamgoue/memboard/core"
)

type httpService struct {
	url    string
	client *http.Client
	logger core.Logger
}

var _ core.PredictionService = (*httpService)(nil)

func NewHTTPService(conf *core.Config, logger core.Logger) *httpService {
	return &httpService{
		url:    conf.Scorer.URL,
		client: &http.Client{Timeout: conf.Scorer.Timeout},
		logger: logger,
	}
}

// scorerRequest is the feature vector shape the scorer was trained on;
// keys are the training data's column labels.
type scorerRequest struct {
	Age           int     `json:"Age"`
	Sex           string  `json:"Sexe"`
	HighSchoolAvg float64 `json:"Moyenne_Lycée"`
	Track         string  `json:"Filière"`
	OtherClubs    int     `json:"Autres_Clubs"`
	Projects      int     `json:"Projets_Réalisés"`
	BureauEval    int     `json:"Evaluation_Bureau"`
	SoftSkills    float64 `json:"Soft_Skills"`
	Interview     float64 `json:"Score_Entretien"`
	ProExperience bool    `json:"Experience_Professionel"`
	Engagement    float64 `json:"Indice_Engagement_Cellule"`
}

type scorerResponse struct {
	Prediction string `json:"prediction"`
	Error      string `json:"error"`
}

// Predict forwards the profile to the scorer and returns its prediction
// verbatim. Values pass through unchanged; the profile is validated by the
// caller. Any transport failure, timeout or non-2xx response surfaces as
// core.ErrScorerUnavailable; the single call is best-effort with no retries.
func (svc *httpService) Predict(ctx context.Context, profile core.Profile) (string, error) {
	body, err := json.Marshal(scorerRequest{
		Age:           profile.Age,
		Sex:           profile.Sex,
		HighSchoolAvg: profile.HighSchoolAverage,
		Track:         profile.Track,
		OtherClubs:    profile.OtherClubsCount,
		Projects:      profile.ProjectsCompleted,
		BureauEval:    profile.BureauEvaluation,
		SoftSkills:    profile.SoftSkillsScore,
		Interview:     profile.InterviewScore,
		ProExperience: profile.HasProfessionalExperience,
		Engagement:    profile.EngagementIndex,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding scorer request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building scorer request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("calling scorer: %v", err), err)
		return "", core.ErrScorerUnavailable
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		svc.logger.Error(fmt.Sprintf("scorer responded with status %d", res.StatusCode))
		return "", core.ErrScorerUnavailable
	}

	var out scorerResponse
	if err = json.NewDecoder(res.Body).Decode(&out); err != nil {
		svc.logger.Error(fmt.Sprintf("decoding scorer response: %v", err), err)
		return "", core.ErrScorerUnavailable
	}
	if out.Prediction == "" {
		svc.logger.Error(fmt.Sprintf("scorer returned no prediction: %s", out.Error))
		return "", core.ErrScorerUnavailable
	}
	return out.Prediction, nil
}
