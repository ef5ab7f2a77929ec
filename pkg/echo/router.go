package echo

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hconfig "github.com/cloudwego/hertz/pkg/common/config"

	"github.com/goliatone/go-formsend/pkg/config"
)

// RegisterRoutes installs the middleware chain and every endpoint on h.
func RegisterRoutes(h *server.Hertz, cfg config.ServerConfig, metrics *Metrics) {
	if metrics == nil {
		metrics = NewMetrics()
	}
	handler := NewHandler(metrics)

	chain := []app.HandlerFunc{
		Observe(metrics),
		Recovery(),
		AccessLog(),
		BodyLimit(cfg.MaxBodySize),
	}
	for _, mw := range []app.HandlerFunc{CORS(cfg.CORS), RateLimit(cfg.RateLimit)} {
		if mw != nil {
			chain = append(chain, mw)
		}
	}
	h.Use(chain...)

	h.GET("/health", handler.Health)
	h.GET("/metrics", metrics.Handler())

	api := h.Group("/api/demo")
	{
		api.POST("/json", handler.PostJSON)
		api.POST("/form", handler.PostForm)
		api.POST("/simple", handler.PostSimple)
		api.GET("/query", handler.GetQuery)
		api.GET("/openapi.json", handler.OpenAPI)
	}
}

// transportSlack keeps hertz's own body limit above BodyLimit so oversized
// requests get the JSON error answer.
const transportSlack = 1 << 20

// NewServer builds a hertz server listening on cfg.Address with every route
// registered. Call Spin to serve.
func NewServer(cfg config.ServerConfig, metrics *Metrics) *server.Hertz {
	opts := []hconfig.Option{server.WithHostPorts(cfg.Address)}
	if cfg.MaxBodySize > 0 {
		opts = append(opts, server.WithMaxRequestBodySize(int(cfg.MaxBodySize)+transportSlack))
	}
	h := server.New(opts...)
	RegisterRoutes(h, cfg, metrics)
	return h
}
