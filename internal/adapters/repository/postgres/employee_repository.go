package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ogurasousui/employee-records/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-records/internal/platform/db/postgres"
)

// 1 操作 = 1 ストアドプロシージャ呼び出し。行の並び順や採番はプロシージャ側が保証する。
const (
	sqlCreateEmployee  = `SELECT sp_create_employee($1, $2, $3, $4, $5)`
	sqlGetEmployeeByID = `SELECT id, full_name, position, department, hire_date, salary FROM sp_get_employee_by_id($1)`
	sqlListEmployees   = `SELECT id, full_name, position, department, hire_date, salary FROM sp_list_employees()`
	sqlUpdateEmployee  = `SELECT sp_update_employee($1, $2, $3, $4, $5, $6)`
	sqlDeleteEmployee  = `SELECT sp_delete_employee($1)`
)

// EmployeeRepository は PostgreSQL ストアドプロシージャを呼び出す永続化実装です。
// 接続はクエリごとにプールから取得され、終了時に必ず返却されます。
type EmployeeRepository struct {
	pool pgdb.Queryer
	log  zerolog.Logger
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer, log zerolog.Logger) *EmployeeRepository {
	return &EmployeeRepository{pool: pool, log: log}
}

// Create は従業員を登録し、プロシージャが採番した ID を返します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, sqlCreateEmployee,
		e.FullName,
		e.Position,
		e.Department,
		e.HireDate,
		e.Salary,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("postgres: sp_create_employee: %w", err)
	}

	r.log.Debug().Int64("id", id).Msg("sp_create_employee")
	return id, nil
}

// FindByID は ID で従業員を取得します。該当行がなければ (nil, nil) を返します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	row := r.pool.QueryRow(ctx, sqlGetEmployeeByID, id)

	found, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: sp_get_employee_by_id: %w", err)
	}
	return found, nil
}

// List は全従業員を返します。ID 昇順はプロシージャ側で保証されます。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	rows, err := r.pool.Query(ctx, sqlListEmployees)
	if err != nil {
		return nil, fmt.Errorf("postgres: sp_list_employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: sp_list_employees: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: sp_list_employees: %w", err)
	}

	return employees, nil
}

// Update は従業員を ID 指定で置き換え、影響行があったかどうかを返します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (bool, error) {
	var affected int64
	err := r.pool.QueryRow(ctx, sqlUpdateEmployee,
		e.ID,
		e.FullName,
		e.Position,
		e.Department,
		e.HireDate,
		e.Salary,
	).Scan(&affected)
	if err != nil {
		return false, fmt.Errorf("postgres: sp_update_employee: %w", err)
	}

	r.log.Debug().Int64("id", e.ID).Int64("affected", affected).Msg("sp_update_employee")
	return affected > 0, nil
}

// Delete は従業員を削除し、影響行があったかどうかを返します。
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	if err := r.pool.QueryRow(ctx, sqlDeleteEmployee, id).Scan(&affected); err != nil {
		return false, fmt.Errorf("postgres: sp_delete_employee: %w", err)
	}

	r.log.Debug().Int64("id", id).Int64("affected", affected).Msg("sp_delete_employee")
	return affected > 0, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id         int64
		fullName   string
		position   string
		department string
		hireDate   time.Time
		salary     decimal.Decimal
	)

	if err := row.Scan(&id, &fullName, &position, &department, &hireDate, &salary); err != nil {
		return nil, err
	}

	hire := hireDate.UTC()
	return &employee.Employee{
		ID:         id,
		FullName:   fullName,
		Position:   position,
		Department: department,
		HireDate:   time.Date(hire.Year(), hire.Month(), hire.Day(), 0, 0, 0, 0, time.UTC),
		Salary:     salary,
	}, nil
}
