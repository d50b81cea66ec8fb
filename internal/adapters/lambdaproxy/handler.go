package lambdaproxy

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/ogurasousui/employee-records/internal/adapters/rest"
)

// Handler は API Gateway プロキシ統合のイベントを共有ルーターに橋渡しします。
// ルーティングとステータスコードの決定はすべて rest.Router 側にあり、
// リスナー版トランスポートと挙動が分岐しません。
type Handler struct {
	router *rest.Router
}

// New は Handler を生成します。
func New(router *rest.Router) *Handler {
	return &Handler{router: router}
}

// Handle は 1 イベントを処理します。lambda.Start に渡して使います。
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := h.router.Handle(ctx, rest.Request{
		Method: req.HTTPMethod,
		Path:   req.Path,
		Body:   []byte(req.Body),
	})

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       string(resp.Body),
	}, nil
}
