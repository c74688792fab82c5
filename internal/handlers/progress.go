package handlers

import (
  "errors"
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/mlisboa17/leiabem-backend/internal/requestdata"
  "github.com/mlisboa17/leiabem-backend/internal/services"
)

type ProgressHandler struct {
  progressService     services.ProgressService
  celebrationService  services.CelebrationService
}

func NewProgressHandler(progressService services.ProgressService, celebrationService services.CelebrationService) *ProgressHandler {
  return &ProgressHandler{progressService: progressService, celebrationService: celebrationService}
}

func (ph *ProgressHandler) AddToLibrary(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  bookID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  progress, created, err := ph.progressService.AddToLibrary(c.Request.Context(), rd.UserID, bookID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"progress": progress, "created": created})
}

func (ph *ProgressHandler) ListLibrary(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  progresses, err := ph.progressService.ListForUser(c.Request.Context(), rd.UserID, c.Query("status"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"progresses": progresses})
}

// UpdatePage applies a page update; when the update completes the book it
// runs the celebration flow and returns its summary alongside the progress.
func (ph *ProgressHandler) UpdatePage(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  progressID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  var req struct {
    CurrentPage   *int    `json:"current_page"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPage == nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", errors.New("current_page is required"))
    return
  }

  progress, justCompleted, err := ph.progressService.UpdateByPage(c.Request.Context(), rd.UserID, progressID, *req.CurrentPage)
  if errors.Is(err, services.ErrAlreadyCompleted) {
    // Informational: the book is finished, nothing changed.
    RespondOK(c, gin.H{"progress": progress, "info": "book already completed"})
    return
  }
  if err != nil {
    RespondServiceError(c, err)
    return
  }

  resp := gin.H{"progress": progress, "just_completed": justCompleted}
  if justCompleted {
    celebration, cErr := ph.celebrationService.Celebrate(c.Request.Context(), rd.UserID, progressID)
    if cErr != nil {
      RespondServiceError(c, cErr)
      return
    }
    resp["celebration"] = celebration
  }
  RespondOK(c, resp)
}

func (ph *ProgressHandler) RegisterSession(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  progressID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  var req struct {
    PagesRead   int   `json:"pages_read"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  if req.PagesRead < 0 {
    RespondError(c, http.StatusBadRequest, "invalid_input", errors.New("pages_read must not be negative"))
    return
  }

  result, err := ph.progressService.RegisterSession(c.Request.Context(), rd.UserID, progressID, req.PagesRead, time.Now())
  if err != nil {
    RespondServiceError(c, err)
    return
  }

  resp := gin.H{
    "points_awarded": result.PointsAwarded,
    "just_completed": result.JustCompleted,
    "progress":       result.Progress,
  }
  if result.JustCompleted {
    celebration, cErr := ph.celebrationService.Celebrate(c.Request.Context(), rd.UserID, progressID)
    if cErr != nil {
      RespondServiceError(c, cErr)
      return
    }
    resp["celebration"] = celebration
  }
  RespondOK(c, resp)
}

func (ph *ProgressHandler) UpdateStatus(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  progressID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  var req struct {
    Status    string    `json:"status"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  progress, justCompleted, err := ph.progressService.SetStatus(c.Request.Context(), rd.UserID, progressID, req.Status)
  if errors.Is(err, services.ErrAlreadyCompleted) {
    RespondOK(c, gin.H{"progress": progress, "info": "book already completed"})
    return
  }
  if err != nil {
    RespondServiceError(c, err)
    return
  }

  resp := gin.H{"progress": progress, "just_completed": justCompleted}
  if justCompleted {
    celebration, cErr := ph.celebrationService.Celebrate(c.Request.Context(), rd.UserID, progressID)
    if cErr != nil {
      RespondServiceError(c, cErr)
      return
    }
    resp["celebration"] = celebration
  }
  RespondOK(c, resp)
}
