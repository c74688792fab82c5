package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/mlisboa17/leiabem-backend/internal/services"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

type BookHandler struct {
  catalogService  services.CatalogService
  ratingService   services.RatingService
}

func NewBookHandler(catalogService services.CatalogService, ratingService services.RatingService) *BookHandler {
  return &BookHandler{catalogService: catalogService, ratingService: ratingService}
}

func (bh *BookHandler) List(c *gin.Context) {
  books, err := bh.catalogService.SearchBooks(c.Request.Context(), c.Query("q"), c.Query("order"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"books": books})
}

func (bh *BookHandler) Get(c *gin.Context) {
  bookID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  book, err := bh.catalogService.GetBook(c.Request.Context(), bookID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  ratings, err := bh.ratingService.ListForBook(c.Request.Context(), bookID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"book": book, "ratings": ratings})
}

type bookRequest struct {
  Title           string      `json:"title"`
  AuthorID        *uuid.UUID  `json:"author_id"`
  PublisherID     *uuid.UUID  `json:"publisher_id"`
  PublicationYear int         `json:"publication_year"`
  PageCount       int         `json:"page_count"`
}

func (bh *BookHandler) Create(c *gin.Context) {
  var req bookRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  book := types.Book{
    Title:           req.Title,
    AuthorID:        req.AuthorID,
    PublisherID:     req.PublisherID,
    PublicationYear: req.PublicationYear,
    PageCount:       req.PageCount,
  }
  created, err := bh.catalogService.CreateBook(c.Request.Context(), &book)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"book": created})
}

func (bh *BookHandler) Update(c *gin.Context) {
  bookID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  var req bookRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  book := types.Book{
    ID:              bookID,
    Title:           req.Title,
    AuthorID:        req.AuthorID,
    PublisherID:     req.PublisherID,
    PublicationYear: req.PublicationYear,
    PageCount:       req.PageCount,
  }
  updated, err := bh.catalogService.UpdateBook(c.Request.Context(), &book)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"book": updated})
}

func (bh *BookHandler) Delete(c *gin.Context) {
  bookID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }
  if err := bh.catalogService.DeleteBook(c.Request.Context(), bookID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": "true"})
}
