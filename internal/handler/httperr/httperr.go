package httperr

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the current request id.
const RequestIDKey = "request_id"

// Response is the single error envelope of the API.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func New(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	if c != nil {
		resp.RequestID = c.GetString(RequestIDKey)
	}
	return resp
}

// AbortWithError writes the envelope and records err on the context so the
// logging middleware can report the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(c, status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
