package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ogurasousui/employee-records/internal/core/employee"
)

const contentTypeJSON = "application/json; charset=utf-8"

// errorResponse はエラー種別をステータスコードに写す唯一の場所です。
// 500 系では内部情報をクライアントに漏らしません。
func (r *Router) errorResponse(err error) Response {
	switch {
	case isValidationError(err):
		return badRequest(err)
	default:
		var srcErr *employee.SourceError
		if errors.As(err, &srcErr) {
			r.log.Error().Err(srcErr.Err).Str("source", srcErr.Source).Msg("salary aggregation failed")
		} else {
			r.log.Error().Err(err).Msg("request failed")
		}
		return jsonResponse(http.StatusInternalServerError, errorPayload{Error: "internal server error"})
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, employee.ErrInvalidID) ||
		errors.Is(err, employee.ErrInvalidFullName) ||
		errors.Is(err, employee.ErrInvalidPosition) ||
		errors.Is(err, employee.ErrInvalidDepartment) ||
		errors.Is(err, employee.ErrInvalidHireDate) ||
		errors.Is(err, employee.ErrInvalidSalary)
}

func jsonResponse(status int, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Header:     map[string]string{"Content-Type": contentTypeJSON},
			Body:       []byte(`{"error":"internal server error"}`),
		}
	}
	return Response{
		StatusCode: status,
		Header:     map[string]string{"Content-Type": contentTypeJSON},
		Body:       body,
	}
}

func badRequest(err error) Response {
	return jsonResponse(http.StatusBadRequest, errorPayload{Error: err.Error()})
}

func notFound() Response {
	return Response{StatusCode: http.StatusNotFound}
}

func noContent() Response {
	return Response{StatusCode: http.StatusNoContent}
}

func methodNotAllowed() Response {
	return jsonResponse(http.StatusMethodNotAllowed, errorPayload{Error: "method not allowed"})
}
