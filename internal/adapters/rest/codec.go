package rest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ogurasousui/employee-records/internal/core/employee"
)

const dateLayout = "2006-01-02"

func init() {
	// 給与はワイヤ上では数値で表現する契約のため、文字列化を無効にする。
	decimal.MarshalJSONWithoutQuotes = true
}

type employeePayload struct {
	ID         int64           `json:"id,omitempty"`
	FullName   string          `json:"full_name"`
	Position   string          `json:"position"`
	Department string          `json:"department"`
	HireDate   string          `json:"hire_date"`
	Salary     decimal.Decimal `json:"salary"`
}

type createdPayload struct {
	ID int64 `json:"id"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func decodeEmployee(body []byte) (employee.CreateEmployeeInput, error) {
	var p employeePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return employee.CreateEmployeeInput{}, fmt.Errorf("malformed body: %w", err)
	}

	in := employee.CreateEmployeeInput{
		FullName:   p.FullName,
		Position:   p.Position,
		Department: p.Department,
		Salary:     p.Salary,
	}

	if p.HireDate != "" {
		t, err := time.Parse(dateLayout, p.HireDate)
		if err != nil {
			return employee.CreateEmployeeInput{}, fmt.Errorf("malformed hire_date %q", p.HireDate)
		}
		in.HireDate = t
	}

	return in, nil
}

func toPayload(e *employee.Employee) employeePayload {
	return employeePayload{
		ID:         e.ID,
		FullName:   e.FullName,
		Position:   e.Position,
		Department: e.Department,
		HireDate:   e.HireDate.Format(dateLayout),
		Salary:     e.Salary,
	}
}
