// Package dir はローカルディレクトリ上の JSON ファイルを給与ソースとして読み込みます。
// 主にローカル開発とテストで使います。
package dir

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogurasousui/employee-records/internal/core/employee"
)

// Reader は <dir>/<source>.json を読み込む employee.SampleReader 実装です。
type Reader struct {
	dir string
}

// NewReader は Reader を生成します。
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// ReadSamples は名前付きソースを読み込みます。ファイルの不在は失敗です。
func (r *Reader) ReadSamples(ctx context.Context, source string) ([]employee.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(r.dir, source+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var samples []employee.Sample
	if err := json.Unmarshal(b, &samples); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return samples, nil
}
