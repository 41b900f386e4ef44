package middleware

import (
	"net/http"

	"previsit-intake/internal/handler/httperr"
	"previsit-intake/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errUnsupportedMediaType = errs.New("request body must be application/json")

func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEJSON {
			httperr.AbortWithError(c, http.StatusUnsupportedMediaType, errUnsupportedMediaType, "Content-Type must be application/json", nil)
			return
		}
		c.Next()
	}
}
