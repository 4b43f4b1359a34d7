package middleware

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
)

var (
	ErrMissingBody = errors.New("request body is required")
	ErrInternal    = errors.New("internal server error")
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

func HandleError(resp *restful.Response, err error, status int) {
	errorResponse := ErrorResponse{
		Error: http.StatusText(status),
		Code:  status,
	}
	if err != nil {
		errorResponse.Details = err.Error()
	}

	resp.WriteHeaderAndEntity(status, errorResponse)
}
