package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the success envelope
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Code  int         `json:"code"`
	Error string      `json:"error"`
	Msg   string      `json:"msg"`
	Data  interface{} `json:"data,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: 0, Msg: "success", Data: data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Code: status, Error: code, Msg: message, Data: detail})
}
