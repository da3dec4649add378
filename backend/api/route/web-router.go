package route

import (
	"net/http"
	"path/filepath"
	"strings"

	"sbml-builder/backend/common"
	apperrors "sbml-builder/backend/common/errors"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// IndexPage is served for "/".
const IndexPage = "builder.html"

func setWebRouter(route *gin.Engine, frontendDir string) {
	route.Use(static.Serve("/", static.LocalFile(frontendDir, false)))
	route.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(frontendDir, IndexPage))
	})
	route.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			common.RespErrorStr(c, http.StatusNotFound, "API route not found")
			return
		}
		common.RespError(c, apperrors.ErrNotFound)
	})
}
