// Package response defines the uniform success/failure envelope every
// workflow operation returns. Expected outcomes (forbidden, not found,
// conflict) are values of this type, never errors.
package response

import "net/http"

type Response[T any] struct {
	IsSuccess  bool   `json:"is_success"`
	Message    string `json:"message"`
	Data       T      `json:"data,omitempty"`
	StatusCode int    `json:"status_code"`
}

// Ok wraps data in a 200 envelope with the default message.
func Ok[T any](data T) Response[T] {
	return Response[T]{
		IsSuccess:  true,
		Message:    "Operation successful",
		Data:       data,
		StatusCode: http.StatusOK,
	}
}

// OkMsg wraps data in a 200 envelope with an explicit message.
func OkMsg[T any](data T, message string) Response[T] {
	r := Ok(data)
	r.Message = message
	return r
}

// Fail builds a failure envelope carrying no payload.
func Fail[T any](message string, statusCode int) Response[T] {
	return Response[T]{
		IsSuccess:  false,
		Message:    message,
		StatusCode: statusCode,
	}
}
