// Package httputil holds the response envelope shared by all API handlers.
package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eliasbui/asia-shop/internal/apperr"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error maps domain errors to their HTTP status; anything else is a 500
// with the message withheld from the client.
func Error(c *gin.Context, err error) {
	if e, ok := apperr.From(err); ok {
		c.JSON(e.Code.HTTPStatus(), Response{
			Success: false,
			Error:   &ErrorBody{Code: string(e.Code), Message: e.Message},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error:   &ErrorBody{Code: string(apperr.CodeUnknown), Message: "internal server error"},
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   &ErrorBody{Code: string(apperr.CodeInvalidInput), Message: message},
	})
}
