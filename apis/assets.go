package apis

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const staticFileNotFound = "Static file not found"

// RegisterAssets serves files under dir at /assets. Missing files and directories get a plain-text 404.
func RegisterAssets(dir string, g *gin.Engine) {

	fs := gin.Dir(dir, false)

	serve := func(ctx *gin.Context) {

		name := ctx.Param("filepath")

		f, err := fs.Open(name)
		if err != nil {
			ctx.String(http.StatusNotFound, staticFileNotFound)
			return
		}

		defer f.Close()

		stat, err := f.Stat()
		if err != nil || stat.IsDir() {
			ctx.String(http.StatusNotFound, staticFileNotFound)
			return
		}

		// served directly, http.FileServer would redirect names ending in /index.html
		http.ServeContent(ctx.Writer, ctx.Request, stat.Name(), stat.ModTime(), f)
	}

	g.GET("assets/*filepath", serve)
	g.HEAD("assets/*filepath", serve)
}
