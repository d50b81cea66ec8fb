package server

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/ogurasousui/employee-records/internal/adapters/rest"
)

// Server は HTTP リスナーのライフサイクルを管理します。
// 受信リクエストはすべて共有ルーターに委譲され、ルーティングの実体は
// Lambda トランスポートと共通です。
type Server struct {
	listenAddr string
	server     *fasthttp.Server
}

// New は指定されたアドレスで待ち受けるサーバーを構築します。
func New(listenAddr string, router *rest.Router, log zerolog.Logger) *Server {
	handler := recoveryMiddleware(log, loggingMiddleware(log, bridge(router)))

	return &Server{
		listenAddr: listenAddr,
		server: &fasthttp.Server{
			Handler:            handler,
			Name:               "employee-records-api",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       15 * time.Second,
			MaxRequestBodySize: 1 << 20,
		},
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe(s.listenAddr)
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case err := <-errCh:
		return err
	}
}

func bridge(router *rest.Router) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		resp := router.Handle(ctx, rest.Request{
			Method: string(ctx.Method()),
			Path:   string(ctx.Path()),
			Body:   ctx.PostBody(),
		})

		for k, v := range resp.Header {
			ctx.Response.Header.Set(k, v)
		}
		ctx.SetStatusCode(resp.StatusCode)
		if len(resp.Body) > 0 {
			ctx.SetBody(resp.Body)
		}
	}
}
