package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ogurasousui/employee-records/internal/core/employee"
)

// Request はトランスポート非依存の受信リクエストです。
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Response はトランスポート非依存の応答です。
type Response struct {
	StatusCode int
	Header     map[string]string
	Body       []byte
}

// Router は (method, path, body) をユースケース呼び出しとステータスコードに写します。
// どのトランスポートから届いたかに関わらず挙動は同一です。
type Router struct {
	svc employee.UseCase
	log zerolog.Logger
}

// NewRouter は Router を生成します。
func NewRouter(svc employee.UseCase, log zerolog.Logger) *Router {
	return &Router{svc: svc, log: log}
}

// Handle は 1 リクエストを処理します。
//
//	POST   /employees            -> 201 {id}
//	GET    /employees            -> 200 [record...]
//	GET    /employees/{id}       -> 200 record / 404
//	PUT    /employees/{id}       -> 204 / 404
//	DELETE /employees/{id}       -> 204 / 404
//	GET    /employees/salary/top -> 200 [amount...]
//
// {id} が正の整数として構文解析できない場合は 404 ではなく 400 を返します。
func (r *Router) Handle(ctx context.Context, req Request) Response {
	segments := splitPath(req.Path)

	switch {
	case len(segments) == 1 && segments[0] == "employees":
		switch req.Method {
		case http.MethodGet:
			return r.listEmployees(ctx)
		case http.MethodPost:
			return r.createEmployee(ctx, req.Body)
		default:
			return methodNotAllowed()
		}

	case len(segments) == 3 && segments[0] == "employees" && segments[1] == "salary" && segments[2] == "top":
		if req.Method != http.MethodGet {
			return methodNotAllowed()
		}
		return r.topSalaries(ctx)

	case len(segments) == 2 && segments[0] == "employees":
		id, err := parseID(segments[1])
		if err != nil {
			return badRequest(err)
		}

		switch req.Method {
		case http.MethodGet:
			return r.getEmployee(ctx, id)
		case http.MethodPut:
			return r.updateEmployee(ctx, id, req.Body)
		case http.MethodDelete:
			return r.deleteEmployee(ctx, id)
		default:
			return methodNotAllowed()
		}

	default:
		return notFound()
	}
}

func (r *Router) createEmployee(ctx context.Context, body []byte) Response {
	in, err := decodeEmployee(body)
	if err != nil {
		return badRequest(err)
	}

	id, err := r.svc.CreateEmployee(ctx, in)
	if err != nil {
		return r.errorResponse(err)
	}

	return jsonResponse(http.StatusCreated, createdPayload{ID: id})
}

func (r *Router) listEmployees(ctx context.Context) Response {
	employees, err := r.svc.ListEmployees(ctx)
	if err != nil {
		return r.errorResponse(err)
	}

	payload := make([]employeePayload, 0, len(employees))
	for _, e := range employees {
		payload = append(payload, toPayload(e))
	}
	return jsonResponse(http.StatusOK, payload)
}

func (r *Router) getEmployee(ctx context.Context, id int64) Response {
	found, err := r.svc.GetEmployee(ctx, id)
	if err != nil {
		return r.errorResponse(err)
	}
	if found == nil {
		return notFound()
	}
	return jsonResponse(http.StatusOK, toPayload(found))
}

func (r *Router) updateEmployee(ctx context.Context, id int64, body []byte) Response {
	in, err := decodeEmployee(body)
	if err != nil {
		return badRequest(err)
	}

	updated, err := r.svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{
		ID:         id,
		FullName:   in.FullName,
		Position:   in.Position,
		Department: in.Department,
		HireDate:   in.HireDate,
		Salary:     in.Salary,
	})
	if err != nil {
		return r.errorResponse(err)
	}
	if !updated {
		return notFound()
	}
	return noContent()
}

func (r *Router) deleteEmployee(ctx context.Context, id int64) Response {
	deleted, err := r.svc.DeleteEmployee(ctx, id)
	if err != nil {
		return r.errorResponse(err)
	}
	if !deleted {
		return notFound()
	}
	return noContent()
}

func (r *Router) topSalaries(ctx context.Context) Response {
	top, err := r.svc.TopSalaries(ctx, employee.DefaultTopCount)
	if err != nil {
		return r.errorResponse(err)
	}
	return jsonResponse(http.StatusOK, top)
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed id %q", raw)
	}
	return id, nil
}
