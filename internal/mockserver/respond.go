package mockserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope builds the uniform {code, message, data} wrapper every
// response is sent in. The mock and the real backend must agree on this
// shape exactly for the client to be usable against either.
func envelope(code int, message string, data any) gin.H {
	return gin.H{"code": code, "message": message, "data": data}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope(http.StatusOK, "success", data))
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope(status, message, nil))
}
