package handler

import "github.com/jwalitptl/vetclinic-api/pkg/httputil"

type Response = httputil.Response

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: httputil.StatusSuccess,
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  httputil.StatusError,
		Message: message,
	}
}

func NewMessageResponse(message string) *Response {
	return &Response{
		Status:  httputil.StatusSuccess,
		Message: message,
	}
}
