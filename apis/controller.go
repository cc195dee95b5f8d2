package apis

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-docproxy/errors"
)

const healthCheckTimeout = 2 * time.Second

func RegisterGatewayAPI(api GatewayAPI, g *gin.Engine) {

	bindCollection := func(ctx *gin.Context) {

		if err := api.BindCollection(ctx); err != nil {
			writeErrorJSON(ctx, err)
			ctx.Abort()
			return
		}

		ctx.Next()
	}

	collection := g.Group("collection/:collectionName", bindCollection)

	collection.GET("", func(ctx *gin.Context) {

		documents, err := api.List(ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, documents)
	})

	collection.POST("", func(ctx *gin.Context) {

		document, err := api.Insert(ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, document)
	})

	collection.GET(":id", func(ctx *gin.Context) {

		document, err := api.ReadOne(ctx.Param("id"), ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		// a missing document is not an error and is written as null
		ctx.JSON(http.StatusOK, document)
	})

	collection.PUT(":id", func(ctx *gin.Context) {

		matched, err := api.Update(ctx.Param("id"), ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		if !matched {
			ctx.JSON(http.StatusOK, ErrorStatusResponse)
			return
		}

		ctx.JSON(http.StatusOK, SuccessResponse)
	})

	search := g.Group("search/:collectionName", bindCollection)

	search.GET("", func(ctx *gin.Context) {

		documents, err := api.Search(ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, documents)
	})
}

func RegisterHealthAPI(checker ReadinessChecker, g *gin.Engine) {

	g.GET("health", func(ctx *gin.Context) {

		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := checker.Ping(pingCtx); err != nil {
			slog.Warn("Document store is not ready", "error", err)
			ctx.JSON(http.StatusServiceUnavailable, NotReadyResponse)
			return
		}

		ctx.JSON(http.StatusOK, ReadyResponse)
	})
}

func writeErrorJSON(ctx *gin.Context, err error) {

	assertedError, ok := errors.TryAssertError(err)
	if !ok {
		slog.Error("Request failed", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "error", err)
		ctx.JSON(http.StatusInternalServerError, CRUDResponse{Error: errors.UnknownError.New(err)})
		return
	}

	var statusCode int
	var errorResponse = CRUDResponse{Error: assertedError}

	switch assertedError.Code {
	case errors.StoreNotReadyErrorCode:
		statusCode = http.StatusServiceUnavailable
	default:
		statusCode = http.StatusBadRequest
	}

	slog.Warn("Request rejected", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "error", assertedError.Name, "message", assertedError.Message)
	ctx.JSON(statusCode, errorResponse)
}
