package echo

import (
	"context"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-formsend/pkg/config"
)

// Recovery turns a panic into a 500 answer.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				hlog.CtxErrorf(ctx, "[PANIC RECOVERED] %v\n%s", err, debug.Stack())
				abort(c, consts.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next(ctx)
	}
}

// Observe counts answers with an error status. Register it first so it sees
// the status set by every later handler.
func Observe(m *Metrics) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		c.Next(ctx)
		if status := c.Response.StatusCode(); status >= consts.StatusBadRequest {
			m.reject(strconv.Itoa(status))
		}
	}
}

// AccessLog writes one line per request.
func AccessLog() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		hlog.CtxInfof(ctx, "| %3d | %13v | %15s | %-7s | %s",
			c.Response.StatusCode(),
			time.Since(start),
			c.ClientIP(),
			c.Method(),
			c.Path(),
		)
	}
}

// BodyLimit rejects requests whose declared body exceeds max bytes. A
// non-positive max disables the check.
func BodyLimit(max int64) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if max > 0 && int64(c.Request.Header.ContentLength()) > max {
			hlog.CtxWarnf(ctx, "request body of %d bytes exceeds %d path=%s", c.Request.Header.ContentLength(), max, c.Path())
			abort(c, consts.StatusRequestEntityTooLarge, "request body exceeds max size")
			return
		}
		c.Next(ctx)
	}
}

// RateLimit shares one token bucket across all requests. It returns nil when
// limiting is disabled.
func RateLimit(cfg config.RateLimitConfig) app.HandlerFunc {
	if cfg.RPS <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), burst)

	return func(ctx context.Context, c *app.RequestContext) {
		if !limiter.Allow() {
			hlog.CtxInfof(ctx, "[RATE LIMIT] path=%s", c.Path())
			abort(c, consts.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next(ctx)
	}
}

// CORS builds the hertz-contrib/cors middleware. It returns nil when no
// origin is allowed.
func CORS(cfg config.CORSConfig) app.HandlerFunc {
	if len(cfg.AllowOrigins) == 0 {
		return nil
	}
	corsConfig := cors.Config{
		AllowMethods:  cfg.AllowMethods,
		AllowHeaders:  cfg.AllowHeaders,
		ExposeHeaders: cfg.ExposeHeaders,
		MaxAge:        cfg.MaxAge,
	}
	for _, origin := range cfg.AllowOrigins {
		if strings.TrimSpace(origin) == "*" {
			corsConfig.AllowAllOrigins = true
		}
	}
	if !corsConfig.AllowAllOrigins {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	return cors.New(corsConfig)
}

func abort(c *app.RequestContext, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: status, Message: message})
}
