package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee は従業員レコードの集約ルートです。
// ID はストアが採番し、作成後は不変です。
type Employee struct {
	ID         int64
	FullName   string
	Position   string
	Department string
	HireDate   time.Time
	Salary     decimal.Decimal
}
