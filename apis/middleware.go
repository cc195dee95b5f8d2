package apis

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Allow-Methods":     "GET,HEAD,OPTIONS,POST,PUT",
	"Access-Control-Allow-Headers":     "Origin, X-Requested-With, Content-Type, Accept",
}

// RequestLogger logs each request when it arrives and again with its status once handled.
func RequestLogger() gin.HandlerFunc {

	return func(ctx *gin.Context) {

		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set(requestIDContextKey, requestID)
		ctx.Header(RequestIDHeader, requestID)

		logger := slog.With("request_id", requestID)
		start := time.Now()

		logger.Info("Request received", "method", ctx.Request.Method, "url", ctx.Request.URL.String())

		ctx.Next()

		logger.Info("Response sent", "status", ctx.Writer.Status(), "latency", time.Since(start))
	}
}

// CORS allows every origin on every response and answers preflight requests directly.
func CORS() gin.HandlerFunc {

	return func(ctx *gin.Context) {

		for key, value := range corsHeaders {
			ctx.Header(key, value)
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
