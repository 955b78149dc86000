package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tchamgoue/memboard/core"
)

type predictApi struct {
	service core.PredictionService
}

func RegisterPredictAPI(e *echo.Echo, svc core.PredictionService) {
	api := predictApi{service: svc}

	e.POST("/predictFormation", api.predictFormation)
}

// predictFormation validates the submitted profile and forwards it to the
// scorer. The returned formation name is free text; it is not checked
// against any known formation vocabulary. No member record is touched.
func (api *predictApi) predictFormation(ctx echo.Context) error {
	data := new(core.Profile)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	prediction, err := api.service.Predict(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"prediction": prediction})
}
