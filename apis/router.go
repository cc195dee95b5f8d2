package apis

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-docproxy/metric"
)

type RouterOptions struct {
	AssetsDir string
	Metrics   *metric.Metrics
}

// NewRouter assembles the middleware chain and every route served by the proxy.
func NewRouter(api GatewayAPI, checker ReadinessChecker, opts RouterOptions) *gin.Engine {

	g := gin.New()
	g.Use(gin.Recovery(), RequestLogger(), CORS())

	if opts.Metrics != nil {
		g.Use(opts.Metrics.Middleware())
		g.GET("metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	g.GET("", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, RootMessage)
	})

	RegisterHealthAPI(checker, g)
	RegisterAssets(opts.AssetsDir, g)
	RegisterGatewayAPI(api, g)

	return g
}
