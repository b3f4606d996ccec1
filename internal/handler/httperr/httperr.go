package httperr

import (
	"log/slog"
	"net/http"

	"garden-stock-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackDepth = 12

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError writes {"error":{"message":msg}} and keeps err on the gin
// context. Server-side failures are logged with the request id.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	if status >= http.StatusInternalServerError {
		slog.Error(msg,
			"request_id", c.GetString("request_id"),
			"error", err,
			"stack", errs.ExtractStackLines(err, stackDepth),
		)
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
