package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondAppError maps the error taxonomy onto HTTP statuses so every
// error kind stays distinguishable to the caller.
func RespondAppError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindUser, apperr.KindInvalidInput:
		RespondError(c, http.StatusBadRequest, string(kind), err)
	case apperr.KindNotFound:
		RespondError(c, http.StatusNotFound, string(kind), err)
	case apperr.KindConflict:
		RespondError(c, http.StatusConflict, string(kind), err)
	case apperr.KindInsufficientData:
		RespondError(c, http.StatusUnprocessableEntity, string(kind), err)
	case apperr.KindScoringUnavailable:
		RespondError(c, http.StatusServiceUnavailable, string(kind), err)
	default:
		RespondError(c, http.StatusInternalServerError, string(apperr.KindInternal), err)
	}
}
