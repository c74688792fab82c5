package handlers

import (
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/mlisboa17/leiabem-backend/internal/requestdata"
  "github.com/mlisboa17/leiabem-backend/internal/services"
)

type LeaderboardHandler struct {
  leaderboardService  services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
  return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (lh *LeaderboardHandler) Standings(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
  entries, err := lh.leaderboardService.Top(c.Request.Context(), limit)
  if err != nil {
    RespondServiceError(c, err)
    return
  }

  rd := requestdata.GetRequestData(c.Request.Context())
  rank, total, err := lh.leaderboardService.RankOf(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "standings":          entries,
    "my_rank":            rank,
    "total_participants": total,
  })
}
