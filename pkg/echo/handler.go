package echo

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Handler serves the demo endpoints.
type Handler struct {
	metrics *Metrics
	started time.Time
}

// NewHandler builds a Handler recording into metrics, which may be nil.
func NewHandler(metrics *Metrics) *Handler {
	return &Handler{metrics: metrics, started: time.Now()}
}

// PostJSON echoes a JSON body.
func (h *Handler) PostJSON(ctx context.Context, c *app.RequestContext) {
	var req DemoRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(ctx, c, err)
		return
	}
	h.metrics.echoed(MethodJSON)
	c.JSON(consts.StatusOK, EchoResponse{Method: MethodJSON, Data: req})
}

// PostForm echoes a multipart form and describes the uploaded input_file.
func (h *Handler) PostForm(ctx context.Context, c *app.RequestContext) {
	var req DemoRequest
	if err := c.BindForm(&req); err != nil {
		badRequest(ctx, c, err)
		return
	}

	resp := FormEchoResponse{Method: MethodFormData, Data: req}
	if file, err := c.FormFile("input_file"); err == nil && file != nil {
		name, size := file.Filename, file.Size
		resp.FileName = &name
		resp.FileLength = &size
	}

	h.metrics.echoed(MethodFormData)
	c.JSON(consts.StatusOK, resp)
}

// PostSimple echoes a url-encoded form.
func (h *Handler) PostSimple(ctx context.Context, c *app.RequestContext) {
	var req DemoRequest
	if err := c.BindForm(&req); err != nil {
		badRequest(ctx, c, err)
		return
	}
	h.metrics.echoed(MethodURLEncoded)
	c.JSON(consts.StatusOK, EchoResponse{Method: MethodURLEncoded, Data: req})
}

// GetQuery echoes the input_number and input_string query parameters.
func (h *Handler) GetQuery(ctx context.Context, c *app.RequestContext) {
	var req DemoRequest
	if err := c.BindQuery(&req); err != nil {
		badRequest(ctx, c, err)
		return
	}
	h.metrics.echoed(MethodQuery)
	c.JSON(consts.StatusOK, QueryEchoResponse{
		Method:      MethodQuery,
		NumberValue: req.InputNumber,
		TextValue:   req.InputString,
	})
}

// OpenAPI serves the OpenAPI document as JSON.
func (h *Handler) OpenAPI(ctx context.Context, c *app.RequestContext) {
	doc, err := Document(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "openapi document unavailable: %v", err)
		abort(c, consts.StatusInternalServerError, "openapi document unavailable")
		return
	}
	c.JSON(consts.StatusOK, doc)
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Health reports liveness.
func (h *Handler) Health(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	})
}

func badRequest(ctx context.Context, c *app.RequestContext, err error) {
	hlog.CtxWarnf(ctx, "bind %s %s: %v", c.Method(), c.Path(), err)
	abort(c, consts.StatusBadRequest, err.Error())
}
