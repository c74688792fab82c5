package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/mlisboa17/leiabem-backend/internal/requestdata"
  "github.com/mlisboa17/leiabem-backend/internal/services"
)

type UserHandler struct {
  userService     services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  me, err := uh.userService.GetMe(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"me": me})
}

func (uh *UserHandler) Profile(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  stats, err := uh.userService.ProfileStats(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"stats": stats})
}
