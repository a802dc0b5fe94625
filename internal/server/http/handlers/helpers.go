package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/konsiyer/dashboard/internal/server/http/middleware"
)

const defaultPageSize = 10

// CurrentIDToken extracts the merchant identity token from context.
func CurrentIDToken(c *gin.Context) string {
	return c.GetString(middleware.IDTokenContextKey)
}

// pageParams reads 1-indexed pagination query parameters with defaults.
// Out-of-range values are left for the paginator to clamp.
func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if size <= 0 {
		size = defaultPageSize
	}
	return page, size
}
