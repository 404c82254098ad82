package middleware

import (
	"github.com/gin-gonic/gin"

	apphttp "novelhub/internal/pkg/http"
)

func abortWithError(c *gin.Context, err error) {
	status, resp := apphttp.FromError(err)
	c.AbortWithStatusJSON(status, resp)
}
