package employee

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service は従業員に関するユースケースをまとめます。
type Service struct {
	repo    Repository
	samples SampleReader
	sources []string
	log     zerolog.Logger
}

// UseCase は従業員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (int64, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (bool, error)
	DeleteEmployee(ctx context.Context, id int64) (bool, error)
	TopSalaries(ctx context.Context, n int) ([]Sample, error)
}

// NewService は Service を生成します。sources は給与レポートの読み込み対象となる
// ソース名の固定リストです。
func NewService(repo Repository, samples SampleReader, sources []string, log zerolog.Logger) *Service {
	return &Service{repo: repo, samples: samples, sources: sources, log: log}
}

// CreateEmployeeInput は従業員作成時の入力です。
type CreateEmployeeInput struct {
	FullName   string
	Position   string
	Department string
	HireDate   time.Time
	Salary     decimal.Decimal
}

// UpdateEmployeeInput は従業員更新時の入力です。ID 以外の全フィールドを置き換えます。
type UpdateEmployeeInput struct {
	ID         int64
	FullName   string
	Position   string
	Department string
	HireDate   time.Time
	Salary     decimal.Decimal
}

// CreateEmployee は新しい従業員を作成し、採番された ID を返します。
// 検証に失敗した場合、リポジトリには一切到達しません。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (int64, error) {
	e, err := buildEmployee(in.FullName, in.Position, in.Department, in.HireDate, in.Salary)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("id", id).Str("full_name", e.FullName).Msg("employee created")
	return id, nil
}

// GetEmployee は ID で従業員を取得します。該当なしのとき (nil, nil) を返します。
func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}

// ListEmployees は全従業員を ID 昇順で返します。順序はストアが保証します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	return s.repo.List(ctx)
}

// UpdateEmployee は従業員を ID 指定で置き換えます。
// 戻り値 false は「該当行なし」を意味し、エラーではありません。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (bool, error) {
	if in.ID <= 0 {
		return false, ErrInvalidID
	}

	e, err := buildEmployee(in.FullName, in.Position, in.Department, in.HireDate, in.Salary)
	if err != nil {
		return false, err
	}
	e.ID = in.ID

	return s.repo.Update(ctx, e)
}

// DeleteEmployee は従業員を削除します。戻り値の契約は UpdateEmployee と同じです。
func (s *Service) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func buildEmployee(fullName, position, department string, hireDate time.Time, salary decimal.Decimal) (*Employee, error) {
	name, err := normalizeText(fullName, ErrInvalidFullName)
	if err != nil {
		return nil, err
	}

	pos, err := normalizeText(position, ErrInvalidPosition)
	if err != nil {
		return nil, err
	}

	dept, err := normalizeText(department, ErrInvalidDepartment)
	if err != nil {
		return nil, err
	}

	if hireDate.IsZero() {
		return nil, ErrInvalidHireDate
	}

	if salary.IsNegative() {
		return nil, ErrInvalidSalary
	}

	return &Employee{
		FullName:   name,
		Position:   pos,
		Department: dept,
		HireDate:   normalizeDate(hireDate),
		Salary:     salary,
	}, nil
}

func normalizeText(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	return trimmed, nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
