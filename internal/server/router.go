package server

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/discovery"
	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/pool"
	"github.com/meet0129/Travion.ai-sub000/internal/app/middleware"
	"github.com/meet0129/Travion.ai-sub000/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(srv *Server, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	discoveryHandlers := discovery.NewHandlers(srv.DiscoveryService(), srv.GetConfig().Discovery.PoolTargetSize, logger)
	poolHandlers := pool.NewHandlers(srv.PoolManager(), srv.DiscoveryService(), logger)

	routes.Setup(r, discoveryHandlers, poolHandlers, logger)

	return r
}

// zapContextFunc returns the Zap context function for logging
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		// OTEL trace/span IDs (from context)
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		return fields
	}
}
