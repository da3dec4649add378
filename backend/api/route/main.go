package route

import (
	"sbml-builder/backend/api/middleware"
	"sbml-builder/backend/library/metrics"

	"github.com/gin-gonic/gin"
)

// SetRouter installs the middleware chain, the API and the frontend routes.
func SetRouter(route *gin.Engine, frontendDir string) {
	route.Use(middleware.RequestId())
	// Recovery sits inside AccessLog so recovered panics are logged and counted as 500s.
	route.Use(middleware.AccessLog())
	route.Use(middleware.Recovery())
	route.Use(middleware.CORS())
	route.Use(middleware.GzipDecodeMiddleware())
	route.Use(middleware.GzipEncodeMiddleware("/metrics"))

	route.GET("/metrics", gin.WrapH(metrics.Handler()))

	SetApiRouter(route)
	setWebRouter(route, frontendDir)
}
