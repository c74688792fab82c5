package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/mlisboa17/leiabem-backend/internal/requestdata"
  "github.com/mlisboa17/leiabem-backend/internal/services"
)

type RatingHandler struct {
  ratingService   services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
  return &RatingHandler{ratingService: ratingService}
}

func (rh *RatingHandler) Upsert(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  bookID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  var req struct {
    Score     *int      `json:"score"`
    Comment   string    `json:"comment"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  rating, created, err := rh.ratingService.UpsertRating(c.Request.Context(), rd.UserID, bookID, *req.Score, req.Comment)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"rating": rating, "created": created})
}

func (rh *RatingHandler) Delete(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  bookID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  if err := rh.ratingService.DeleteRating(c.Request.Context(), rd.UserID, bookID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": "true"})
}
