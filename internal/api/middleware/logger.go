package middleware

import "github.com/gin-gonic/gin"

// Logger returns the request logging middleware.
func Logger() gin.HandlerFunc {
	return gin.Logger()
}
