package employee

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultTopCount は給与レポートの既定件数です。
const DefaultTopCount = 10

// Sample は外部ソースから読み込む給与サンプルです。永続化はされません。
// JSON 上は裸の数値、または salary フィールドを持つオブジェクトのどちらも受け付けます。
type Sample struct {
	Amount decimal.Decimal
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var record struct {
			Salary decimal.Decimal `json:"salary"`
		}
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return err
		}
		s.Amount = record.Salary
		return nil
	}
	return s.Amount.UnmarshalJSON(trimmed)
}

func (s Sample) MarshalJSON() ([]byte, error) {
	return s.Amount.MarshalJSON()
}

// SampleReader は名前付き給与ソースの読み込みを抽象化します。
type SampleReader interface {
	ReadSamples(ctx context.Context, source string) ([]Sample, error)
}

// TopSalaries は設定済みの全ソースを並行に読み込み、給与の降順で先頭 n 件を返します。
// n が 0 以下の場合は DefaultTopCount を使います。
//
// 全ソースの読み込み成功が前提で、どれか 1 つでも失敗すると SourceError で
// 全体が失敗します。部分集計は返しません。同額のサンプルはソース順・出現順を
// 保ったまま並びます。
func (s *Service) TopSalaries(ctx context.Context, n int) ([]Sample, error) {
	if n <= 0 {
		n = DefaultTopCount
	}

	results := make([][]Sample, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range s.sources {
		g.Go(func() error {
			samples, err := s.samples.ReadSamples(gctx, name)
			if err != nil {
				return &SourceError{Source: name, Err: err}
			}
			results[i] = samples
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range results {
		total += len(part)
	}

	merged := make([]Sample, 0, total)
	for _, part := range results {
		merged = append(merged, part...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Amount.GreaterThan(merged[j].Amount)
	})

	if len(merged) > n {
		merged = merged[:n]
	}

	return merged, nil
}
