package responses

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	Field          string `json:"field,omitempty"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "Not found",
	HttpStatusCode: 404,
}

var ConflictError = ErrorResponse{
	Error:          true,
	Code:           9,
	Message:        "Conflict",
	HttpStatusCode: 409,
}

var LedgerIntegrityError = ErrorResponse{
	Error:          true,
	Code:           10,
	Message:        "Ledger integrity check failed, nothing was changed",
	HttpStatusCode: 500,
}

// FromServiceError maps the error kinds of the ledger service to a response.
func FromServiceError(err error) ErrorResponse {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError
	var conflictErr *service.ConflictError
	switch {
	case errors.As(err, &validationErr):
		resp := BadArgumentsError
		resp.Message = validationErr.Message
		resp.Field = validationErr.Field
		return resp
	case errors.As(err, &notFoundErr):
		resp := NotFoundError
		resp.Message = notFoundErr.Error()
		return resp
	case errors.As(err, &conflictErr):
		resp := ConflictError
		resp.Message = conflictErr.Message
		return resp
	case service.IsIntegrity(err):
		return LedgerIntegrityError
	default:
		return GeneralServerError
	}
}

// InvalidBody describes a request body that failed to bind or validate.
// Validation failures name the first offending field, prefixed with
// fieldPrefix for elements of a batch.
func InvalidBody(err error, fieldPrefix string) ErrorResponse {
	resp := BadArgumentsError
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return resp
	}
	fe := fieldErrs[0]
	resp.Field = fieldPrefix + fe.Field()
	resp.Message = ruleMessage(fe)
	return resp
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed the %s check", fe.Tag())
	}
}

// ServiceError logs err and writes the matching JSON response. Server side
// failures are reported to Sentry.
func ServiceError(c echo.Context, err error) error {
	resp := FromServiceError(err)
	if resp.HttpStatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s failed: %v", c.Request().Method, c.Path(), err)
		captureException(c, err)
	} else {
		c.Logger().Infof("%s %s rejected: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(resp.HttpStatusCode, resp)
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if isErrAllowedForSentry(err) {
		captureException(c, err)
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	resp := FromServiceError(err)
	c.JSON(resp.HttpStatusCode, resp)
}

func captureException(c echo.Context, err error) {
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}
}

// client errors are expected traffic and are kept out of Sentry
func isErrAllowedForSentry(err error) bool {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code >= http.StatusInternalServerError
	}
	return FromServiceError(err).HttpStatusCode >= http.StatusInternalServerError
}
