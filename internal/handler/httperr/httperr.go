package httperr

import (
	"github.com/gin-gonic/gin"
)

// Stable machine-readable codes; messages may change, codes may not.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNotFound            = "RESERVATION_NOT_FOUND"
	CodeDateUnavailable     = "DATE_UNAVAILABLE"
	CodeAlreadyCancelled    = "ALREADY_CANCELLED"
	CodeConcurrentlyChanged = "CONCURRENTLY_MODIFIED"
	CodeInternal            = "INTERNAL"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, code, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}

// keeps err on the gin context so the error middleware can log 5xx causes
func AbortWithError(c *gin.Context, err error, resp Response) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
