package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ogurasousui/employee-records/internal/core/employee"
)

type fakeUseCase struct {
	createFn func(ctx context.Context, in employee.CreateEmployeeInput) (int64, error)
	getFn    func(ctx context.Context, id int64) (*employee.Employee, error)
	listFn   func(ctx context.Context) ([]*employee.Employee, error)
	updateFn func(ctx context.Context, in employee.UpdateEmployeeInput) (bool, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
	topFn    func(ctx context.Context, n int) ([]employee.Sample, error)
}

func (f *fakeUseCase) CreateEmployee(ctx context.Context, in employee.CreateEmployeeInput) (int64, error) {
	return f.createFn(ctx, in)
}

func (f *fakeUseCase) GetEmployee(ctx context.Context, id int64) (*employee.Employee, error) {
	return f.getFn(ctx, id)
}

func (f *fakeUseCase) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	return f.listFn(ctx)
}

func (f *fakeUseCase) UpdateEmployee(ctx context.Context, in employee.UpdateEmployeeInput) (bool, error) {
	return f.updateFn(ctx, in)
}

func (f *fakeUseCase) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	return f.deleteFn(ctx, id)
}

func (f *fakeUseCase) TopSalaries(ctx context.Context, n int) ([]employee.Sample, error) {
	return f.topFn(ctx, n)
}

func testEmployee(id int64) *employee.Employee {
	return &employee.Employee{
		ID:         id,
		FullName:   "Jane Smith",
		Position:   "Developer",
		Department: "Engineering",
		HireDate:   time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC),
		Salary:     decimal.RequireFromString("7500.00"),
	}
}

func TestRouter_CreateEmployee(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{createFn: func(_ context.Context, in employee.CreateEmployeeInput) (int64, error) {
		if in.FullName != "Jane Smith" || in.Department != "Engineering" {
			t.Fatalf("unexpected input: %+v", in)
		}
		if !in.HireDate.Equal(time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected hire date: %v", in.HireDate)
		}
		return 7, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	body := []byte(`{"full_name":"Jane Smith","position":"Developer","department":"Engineering","hire_date":"2025-06-26","salary":7500.00}`)
	resp := router.Handle(context.Background(), Request{Method: http.MethodPost, Path: "/employees", Body: body})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.StatusCode, resp.Body)
	}
	if resp.Header["Content-Type"] != contentTypeJSON {
		t.Fatalf("unexpected content type: %q", resp.Header["Content-Type"])
	}

	var payload struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.ID != 7 {
		t.Fatalf("expected id 7, got %d", payload.ID)
	}
}

func TestRouter_CreateEmployee_ValidationFailure(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{createFn: func(context.Context, employee.CreateEmployeeInput) (int64, error) {
		return 0, employee.ErrInvalidFullName
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodPost, Path: "/employees", Body: []byte(`{"full_name":""}`)})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRouter_CreateEmployee_MalformedBody(t *testing.T) {
	t.Parallel()

	called := false
	svc := &fakeUseCase{createFn: func(context.Context, employee.CreateEmployeeInput) (int64, error) {
		called = true
		return 0, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodPost, Path: "/employees", Body: []byte(`{not json`)})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if called {
		t.Fatal("service must not be invoked for malformed bodies")
	}
}

func TestRouter_GetEmployee(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{getFn: func(_ context.Context, id int64) (*employee.Employee, error) {
		if id == 7 {
			return testEmployee(7), nil
		}
		return nil, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees/7"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload employeePayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.ID != 7 || payload.HireDate != "2025-06-26" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if !payload.Salary.Equal(decimal.RequireFromString("7500.00")) {
		t.Fatalf("unexpected salary: %s", payload.Salary)
	}

	resp = router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees/8"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for absent record, got %d", resp.StatusCode)
	}
}

func TestRouter_GetEmployee_MalformedID(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{getFn: func(context.Context, int64) (*employee.Employee, error) {
		t.Fatal("service must not be invoked for a malformed id")
		return nil, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees/abc"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed id must yield 400, got %d", resp.StatusCode)
	}
}

func TestRouter_GetEmployee_NonPositiveID(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{getFn: func(_ context.Context, id int64) (*employee.Employee, error) {
		if id <= 0 {
			return nil, employee.ErrInvalidID
		}
		return nil, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees/0"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-positive id, got %d", resp.StatusCode)
	}
}

func TestRouter_ListEmployees(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{listFn: func(context.Context) ([]*employee.Employee, error) {
		return []*employee.Employee{testEmployee(1), testEmployee(2)}, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload []employeePayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(payload) != 2 || payload[0].ID != 1 || payload[1].ID != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestRouter_UpdateEmployee_NotFoundNever500(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{updateFn: func(_ context.Context, in employee.UpdateEmployeeInput) (bool, error) {
		if in.ID != 999999 {
			t.Fatalf("expected id 999999, got %d", in.ID)
		}
		return false, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	body := []byte(`{"full_name":"Jane Smith","position":"Developer","department":"Engineering","hire_date":"2025-06-26","salary":7500.00}`)
	resp := router.Handle(context.Background(), Request{Method: http.MethodPut, Path: "/employees/999999", Body: body})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("zero affected rows must yield 404, got %d", resp.StatusCode)
	}
}

func TestRouter_UpdateEmployee_Success(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{updateFn: func(context.Context, employee.UpdateEmployeeInput) (bool, error) {
		return true, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	body := []byte(`{"full_name":"Jane Smith","position":"Developer","department":"Engineering","hire_date":"2025-06-26","salary":7500.00}`)
	resp := router.Handle(context.Background(), Request{Method: http.MethodPut, Path: "/employees/7", Body: body})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if len(resp.Body) != 0 {
		t.Fatalf("204 must have no body, got %s", resp.Body)
	}
}

func TestRouter_DeleteEmployee(t *testing.T) {
	t.Parallel()

	deleted := false
	svc := &fakeUseCase{deleteFn: func(context.Context, int64) (bool, error) {
		if deleted {
			return false, nil
		}
		deleted = true
		return true, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodDelete, Path: "/employees/7"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("first delete: expected 204, got %d", resp.StatusCode)
	}

	resp = router.Handle(context.Background(), Request{Method: http.MethodDelete, Path: "/employees/7"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestRouter_TopSalaries(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{topFn: func(_ context.Context, n int) ([]employee.Sample, error) {
		if n != employee.DefaultTopCount {
			t.Fatalf("expected default count, got %d", n)
		}
		return []employee.Sample{
			{Amount: decimal.RequireFromString("9900")},
			{Amount: decimal.RequireFromString("8800.50")},
		}, nil
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees/salary/top"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var amounts []decimal.Decimal
	if err := json.Unmarshal(resp.Body, &amounts); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(amounts) != 2 || !amounts[0].Equal(decimal.RequireFromString("9900")) {
		t.Fatalf("unexpected amounts: %v", amounts)
	}
}

func TestRouter_TopSalaries_SourceFailure(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{topFn: func(context.Context, int) ([]employee.Sample, error) {
		return nil, &employee.SourceError{Source: "employees_data2", Err: errors.New("no such key")}
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees/salary/top"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var payload errorPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Error != "internal server error" {
		t.Fatalf("500 body must not leak internals, got %q", payload.Error)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	router := NewRouter(&fakeUseCase{}, zerolog.Nop())

	for _, path := range []string{"/", "/health", "/employees/7/extra/deep", "/departments"} {
		resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: path})
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("path %s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := NewRouter(&fakeUseCase{}, zerolog.Nop())

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPatch, "/employees"},
		{http.MethodPost, "/employees/7"},
		{http.MethodDelete, "/employees/salary/top"},
	}
	for _, tc := range cases {
		resp := router.Handle(context.Background(), Request{Method: tc.method, Path: tc.path})
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func TestRouter_StoreFailureIs500(t *testing.T) {
	t.Parallel()

	svc := &fakeUseCase{listFn: func(context.Context) ([]*employee.Employee, error) {
		return nil, errors.New("postgres: sp_list_employees: connection refused")
	}}
	router := NewRouter(svc, zerolog.Nop())

	resp := router.Handle(context.Background(), Request{Method: http.MethodGet, Path: "/employees"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var payload errorPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Error != "internal server error" {
		t.Fatalf("500 body must not leak internals, got %q", payload.Error)
	}
}
