package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phone-inspection-backend/internal/imei"
)

// LookupIMEI handles GET /api/imei/:imei. The lookup is total, so this
// endpoint never 404s.
func (h *Handler) LookupIMEI(c *gin.Context) {
	c.JSON(http.StatusOK, imei.Lookup(c.Param("imei")))
}
