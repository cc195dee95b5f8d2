package apis

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-docproxy/errors"
	"github.com/supakorn-kn/go-docproxy/objects"
)

const RootMessage = "Select a collection, e.g., /collection/lessons"

type CRUDResponse struct {
	Error errors.BaseError `json:"error"`
}

// StatusResponse is the update outcome. Both outcomes are sent with HTTP 200.
type StatusResponse struct {
	Msg string `json:"msg"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// GatewayAPI translates requests on a bound collection into store operations.
// BindCollection runs first on every collection route and must resolve the :collectionName parameter.
type GatewayAPI interface {
	BindCollection(ctx *gin.Context) error
	List(ctx *gin.Context) ([]objects.Document, error)
	Insert(ctx *gin.Context) (objects.Document, error)
	ReadOne(itemID string, ctx *gin.Context) (objects.Document, error)
	Update(itemID string, ctx *gin.Context) (bool, error)
	Search(ctx *gin.Context) ([]objects.Document, error)
}

type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

var SuccessResponse = StatusResponse{Msg: "success"}

var ErrorStatusResponse = StatusResponse{Msg: "error"}

var ReadyResponse = HealthResponse{Status: "ready"}

var NotReadyResponse = HealthResponse{Status: "not ready"}
