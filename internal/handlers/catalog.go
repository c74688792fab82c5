package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/mlisboa17/leiabem-backend/internal/services"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

// CatalogHandler covers the author and publisher admin endpoints. Book
// endpoints live on BookHandler.
type CatalogHandler struct {
  catalogService  services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
  return &CatalogHandler{catalogService: catalogService}
}

func (ch *CatalogHandler) ListAuthors(c *gin.Context) {
  authors, err := ch.catalogService.ListAuthors(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"authors": authors})
}

func (ch *CatalogHandler) CreateAuthor(c *gin.Context) {
  var req struct {
    Name    string    `json:"name"`
    Email   string    `json:"email"`
    Bio     string    `json:"bio"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  author := types.Author{Name: req.Name, Email: req.Email, Bio: req.Bio}
  created, err := ch.catalogService.CreateAuthor(c.Request.Context(), &author)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"author": created})
}

func (ch *CatalogHandler) UpdateAuthor(c *gin.Context) {
  authorID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  var req struct {
    Name    string    `json:"name"`
    Email   string    `json:"email"`
    Bio     string    `json:"bio"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  author := types.Author{ID: authorID, Name: req.Name, Email: req.Email, Bio: req.Bio}
  updated, err := ch.catalogService.UpdateAuthor(c.Request.Context(), &author)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"author": updated})
}

func (ch *CatalogHandler) DeleteAuthor(c *gin.Context) {
  authorID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  if err := ch.catalogService.DeleteAuthor(c.Request.Context(), authorID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": "true"})
}

func (ch *CatalogHandler) ListPublishers(c *gin.Context) {
  publishers, err := ch.catalogService.ListPublishers(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"publishers": publishers})
}

func (ch *CatalogHandler) CreatePublisher(c *gin.Context) {
  var req struct {
    Name      string    `json:"name"`
    Website   string    `json:"website"`
    Phone     string    `json:"phone"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  publisher := types.Publisher{Name: req.Name, Website: req.Website, Phone: req.Phone}
  created, err := ch.catalogService.CreatePublisher(c.Request.Context(), &publisher)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"publisher": created})
}

func (ch *CatalogHandler) UpdatePublisher(c *gin.Context) {
  publisherID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  var req struct {
    Name      string    `json:"name"`
    Website   string    `json:"website"`
    Phone     string    `json:"phone"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  publisher := types.Publisher{ID: publisherID, Name: req.Name, Website: req.Website, Phone: req.Phone}
  updated, err := ch.catalogService.UpdatePublisher(c.Request.Context(), &publisher)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"publisher": updated})
}

func (ch *CatalogHandler) DeletePublisher(c *gin.Context) {
  publisherID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  if err := ch.catalogService.DeletePublisher(c.Request.Context(), publisherID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": "true"})
}
