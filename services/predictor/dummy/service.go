// Package dummypredictor provides a canned in-memory scorer for tests.
package dummypredictor

import (
	"context"

	"github.com/tchamgoue/memboard/core"
)

type service struct {
	prediction string
	err        error
}

var _ core.PredictionService = (*service)(nil)

// NewService returns a scorer that always answers with prediction.
func NewService(prediction string) core.PredictionService {
	return &service{prediction: prediction}
}

// NewFailingService returns a scorer that always fails with err.
func NewFailingService(err error) core.PredictionService {
	return &service{err: err}
}

func (svc *service) Predict(_ context.Context, _ core.Profile) (string, error) {
	if svc.err != nil {
		return "", svc.err
	}
	return svc.prediction, nil
}
