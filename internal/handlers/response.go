package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/mlisboa17/leiabem-backend/internal/services"
)

type APIError struct {
  Message   string  `json:"message"`
  Code      string  `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error     APIError  `json:"error"`
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

// RespondServiceError maps service sentinels onto HTTP statuses.
func RespondServiceError(c *gin.Context, err error) {
  switch {
  case errors.Is(err, services.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, services.ErrOutOfRangeRating):
    RespondError(c, http.StatusBadRequest, "out_of_range_rating", err)
  case errors.Is(err, services.ErrInvalidInput):
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
  case errors.Is(err, services.ErrRatingNotAllowed):
    RespondError(c, http.StatusForbidden, "rating_not_allowed", err)
  case errors.Is(err, services.ErrAlreadyCompleted):
    RespondError(c, http.StatusConflict, "already_completed", err)
  default:
    RespondError(c, http.StatusInternalServerError, "internal", err)
  }
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
