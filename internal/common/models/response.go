package models

import "net/http"

// Response is the {status, message, data} envelope returned by the API.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func NewResponse(status int, message string, data interface{}) Response {
	return Response{Status: status, Message: message, Data: data}
}

// StatusForError maps validation failures to 400 and everything else to 500.
func StatusForError(err error) int {
	if IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
