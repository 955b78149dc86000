package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tchamgoue/memboard/core"
	"github.com/tchamgoue/memboard/core/member"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps
// domain errors to their status codes. Unclassified errors are logged with
// full detail server-side and surfaced as a generic internal error.
func newAppHTTPErrorHandler(logger core.Logger, conf *core.Config) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch errors.Cause(err) {
			case member.ErrNotFound:
				code = http.StatusNotFound
				message = err.Error()
			case member.ErrFormationExists:
				// explicit conflict signal, distinct from generic invalid input
				code = http.StatusConflict
				message = err.Error()
			case core.ErrScorerUnavailable:
				code = http.StatusInternalServerError
				message = core.ErrScorerUnavailable.Error()
			default: // any other error is a server error; do not leak internals
				logger.Error(fmt.Sprintf("request failed: %+v", err), err)
				code = http.StatusInternalServerError
				message = http.StatusText(http.StatusInternalServerError)
			}
		}

		if conf.Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
