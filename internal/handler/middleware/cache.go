package middleware

import "github.com/gin-gonic/gin"

// NoStore marks the response as uncacheable. Used on endpoints whose result
// changes the stored snapshot.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
	}
}
