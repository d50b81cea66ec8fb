package employee

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID         = errors.New("employee: invalid id")
	ErrInvalidFullName   = errors.New("employee: invalid full name")
	ErrInvalidPosition   = errors.New("employee: invalid position")
	ErrInvalidDepartment = errors.New("employee: invalid department")
	ErrInvalidHireDate   = errors.New("employee: invalid hire date")
	ErrInvalidSalary     = errors.New("employee: invalid salary")
)

// SourceError は給与ソースの読み込み失敗を表し、失敗したソース名を保持します。
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("employee: salary source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
