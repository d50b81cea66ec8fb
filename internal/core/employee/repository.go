package employee

import "context"

// Repository は従業員永続化の抽象です。
//
// 不在は値で表現します。FindByID は該当なしのとき (nil, nil) を返し、
// Update / Delete は影響行が 0 のとき (false, nil) を返します。
// エラーはリモート呼び出し自体が失敗した場合に限られます。
type Repository interface {
	Create(ctx context.Context, e *Employee) (int64, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Update(ctx context.Context, e *Employee) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
