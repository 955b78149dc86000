package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tchamgoue/memboard/core"
	"github.com/tchamgoue/memboard/core/member"
)

// Dashboard actions
const (
	actionCellDistribution = "cellDistribution"
	actionFormationCount   = "formationCount"
	actionAddFormation     = "addFormation"
)

var errInvalidAction = echo.NewHTTPError(http.StatusBadRequest, "invalid action")

type dashboardApi struct {
	service *member.Service
}

func RegisterDashboardAPI(e *echo.Echo, svc *member.Service) {
	api := dashboardApi{service: svc}

	e.GET("/dashboard", api.dashboardQuery)
	e.POST("/dashboard", api.dashboardMutate)
}

// AddFormationRequest appends one formation to one member.
type AddFormationRequest struct {
	Action       string `json:"action"`
	MemberID     int    `json:"memberId" validate:"required"`
	NewFormation string `json:"newFormation" validate:"required"`
}

func (r *AddFormationRequest) Validate() error {
	r.NewFormation = core.CleanString(r.NewFormation)
	return core.Validate.Struct(r)
}

// Handlers

func (api *dashboardApi) dashboardQuery(ctx echo.Context) error {
	switch ctx.QueryParam("action") {
	case actionCellDistribution:
		dist, err := api.service.CellDistribution(ctx.Request().Context())
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, dist)

	case actionFormationCount:
		counts, err := api.service.FormationCounts(ctx.Request().Context())
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, counts)

	default:
		return errInvalidAction
	}
}

func (api *dashboardApi) dashboardMutate(ctx echo.Context) error {
	data := new(AddFormationRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if data.Action != actionAddFormation {
		return errInvalidAction
	}
	if err := data.Validate(); err != nil {
		return err
	}

	mbr, err := api.service.AddFormation(ctx.Request().Context(), data.MemberID, data.NewFormation)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mbr)
}
